package goapi

// TypeDetails is the nested type descriptor attached to a local unit.
type TypeDetails struct {
	Name string `json:"name"`
}

// LocalUnit is one record from the local-units listing endpoint.
// Fields the API may omit are pointers so absence survives decoding.
type LocalUnit struct {
	ID          int64        `json:"id"`
	TypeDetails *TypeDetails `json:"type_details"`
	Country     *int         `json:"country"`
}

// TypeName returns the local unit's type name, or "" when the type
// descriptor is missing or empty.
func (u LocalUnit) TypeName() string {
	if u.TypeDetails == nil {
		return ""
	}
	return u.TypeDetails.Name
}

// Country is one record from the country listing endpoint.
type Country struct {
	ID     *int `json:"id"`
	Region *int `json:"region"`
}
