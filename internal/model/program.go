package model

// ProgramNameResponse carries the display name of a training program.
// Programs are generated by an upstream service; this API only exposes
// thin reads over them.
type ProgramNameResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
