package models

// Role enumerates account roles. Every self-registered breeder account is an
// admin of its own farm data; other roles are reserved for lab accounts.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
)

// User is an identity credential holder. Usernames are unique across the
// deployment, enforced by the storage layer.
type User struct {
	ID           string `bson:"_id" json:"id"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"`
	FarmName     string `bson:"farm_name" json:"farmName"`
	Role         Role   `bson:"role" json:"role"`
}
