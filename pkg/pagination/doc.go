// Package pagination provides sequential fetching of offset/limit paginated
// GO API endpoints.
//
// The GO API wraps listings in a {"count": N, "results": [...]} envelope.
// FetchAll walks the envelope page by page until the reported count is
// reached or a page comes back empty, which guards against endpoints whose
// count overstates the data actually delivered.
package pagination
