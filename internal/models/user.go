package models

// User is an account record. The id is a fixed-width decimal string generated
// by the application, not a database object id.
type User struct {
	UserID    string `bson:"user_id" json:"user_id"`
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	DOB       string `bson:"dob" json:"dob"`
	Email     string `bson:"email" json:"email"`
	Password  string `bson:"password" json:"-"` // Don't return password in JSON
}
