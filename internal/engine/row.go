package engine

import "encoding/json"

// Row is one compiled transition. Exactly one of Logic and Err is set: a
// row either compiled to an expression or failed on its own terms without
// taking its neighbours down. Seq starts at 2 to line up with the row
// numbering of the control tables this feeds.
type Row struct {
	Seq      int
	From     string
	To       string
	Template Template
	Logic    string
	Err      error
}

// Code renders the logic column for display and storage: the compiled
// expression, or an ERROR marker naming what went wrong.
func (r Row) Code() string {
	if r.Err != nil {
		return "ERROR: " + r.Err.Error()
	}
	return r.Logic
}

func (r Row) MarshalJSON() ([]byte, error) {
	out := struct {
		Seq      int    `json:"seq"`
		From     string `json:"from"`
		To       string `json:"to"`
		Template string `json:"template,omitempty"`
		Logic    string `json:"logic,omitempty"`
		Error    string `json:"error,omitempty"`
	}{
		Seq:      r.Seq,
		From:     r.From,
		To:       r.To,
		Template: string(r.Template),
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	} else {
		out.Logic = r.Logic
	}
	return json.Marshal(out)
}
