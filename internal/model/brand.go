package model

// Brand is keyed by its name. Uniqueness is enforced by a case-insensitive
// match at creation time, not by a database constraint; two concurrent
// creates of the same new name can race and both win. Accepted.
type Brand struct {
	BaseModel
	Name string `db:"name" json:"name"`
}
