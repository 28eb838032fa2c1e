package model

import "time"

// DefaultAvatar is used when signup does not provide one.
const DefaultAvatar = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

// User is an account row. Password holds the bcrypt hash and is never
// serialized into responses.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Avatar    string    `db:"avatar" json:"avatar"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// UserPatch carries the optional profile fields PUT /user may change.
type UserPatch struct {
	Username *string
	Email    *string
	Avatar   *string
}
