package models

// Category groups journal entries for one user. Journals is a denormalized
// reverse index of journal id -> journal title, kept in sync by the journal
// store whenever a journal is created, deleted, re-titled or re-categorized.
type Category struct {
	CategoryID string            `bson:"category_id" json:"category_id"`
	Title      string            `bson:"title" json:"title"`
	User       string            `bson:"user" json:"user"`
	Created    string            `bson:"created" json:"created"`
	Journals   map[string]string `bson:"journals" json:"journals"`
}
