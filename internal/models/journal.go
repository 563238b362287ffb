package models

// Journal represents a single journaling entry, filed under a category.
// Timestamp is set once at creation; Modified is refreshed on every update.
// Both use the "2006-01-02 15:04:05" layout.
type Journal struct {
	JournalID string `bson:"journal_id" json:"journal_id"`
	Timestamp string `bson:"timestamp" json:"timestamp"`
	Title     string `bson:"title" json:"title"`
	Prompt    string `bson:"prompt" json:"prompt"`
	Content   string `bson:"content" json:"content"`
	Modified  string `bson:"modified" json:"modified"`
	User      string `bson:"user" json:"user"`
	Category  string `bson:"category" json:"category"`
}
