// Package molecule defines the request and response bodies of the
// enumeration API. No domain logic lives here, only plain data types that
// the server, the client SDK and the CLI can all import.
package molecule

// DefaultLimit is the number of products returned when a request does not
// set one.
const DefaultLimit = 200

// ─────────────────────────────────────────────────────────────────────────────
// Enumeration
// ─────────────────────────────────────────────────────────────────────────────

// EnumerateRequest asks for every single-point substitution of SMILES.
//
// A nil Groups selects every fragment tag in table order. A non-nil empty
// Groups selects none and yields no rows. A zero Limit means DefaultLimit.
type EnumerateRequest struct {
	SMILES string   `json:"smiles" yaml:"smiles"`
	Groups []string `json:"groups" yaml:"groups"`
	Limit  int      `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// EffectiveLimit returns Limit or DefaultLimit when it is unset.
func (r EnumerateRequest) EffectiveLimit() int {
	if r.Limit == 0 {
		return DefaultLimit
	}
	return r.Limit
}

// DescriptorRow is one product and its descriptors.
type DescriptorRow struct {
	SMILES string  `json:"smiles" yaml:"smiles"`
	MW     float64 `json:"mw" yaml:"mw"`
	CLogP  float64 `json:"clogp" yaml:"clogp"`
	HBD    int     `json:"hbd" yaml:"hbd"`
	HBA    int     `json:"hba" yaml:"hba"`
	QED    float64 `json:"qed" yaml:"qed"`
	RO5    int     `json:"ro5" yaml:"ro5"`
}

// EnumerateResponse lists products in the order they were generated.
type EnumerateResponse struct {
	Rows []DescriptorRow `json:"rows" yaml:"rows"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Describe
// ─────────────────────────────────────────────────────────────────────────────

// DescribeRequest asks for the descriptor row of a single structure.
type DescribeRequest struct {
	SMILES string `json:"smiles" yaml:"smiles"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Fragment groups
// ─────────────────────────────────────────────────────────────────────────────

// Group is one entry of the fragment table.
type Group struct {
	Tag    string `json:"tag" yaml:"tag"`
	SMILES string `json:"smiles" yaml:"smiles"`
}

// GroupsResponse lists the fragment table in table order.
type GroupsResponse struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

//Personal.AI order the ending
