package plan

//go:generate go tool go-enum --marshal --names --values

// Kind of the edit applied to a block.
// ENUM(replace=1, filter, remove)
type EditKind int
