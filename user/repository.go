package user

import (
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	DB *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *User) (*User, error) {
	query := `
		INSERT INTO users (name, email, password, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, phone, created_at;
	`
	var createdUser User
	err := r.DB.Get(&createdUser, query, user.Name, user.Email, user.Password, user.Phone)
	return &createdUser, err
}

func (r *UserRepository) GetUsers() ([]User, error) {
	var users []User
	query := `SELECT id, name, email, phone, created_at FROM users ORDER BY id ASC;`
	err := r.DB.Select(&users, query)
	return users, err
}

func (r *UserRepository) GetUserByID(id int64) (*User, error) {
	var user User
	query := `SELECT id, name, email, phone, created_at FROM users WHERE id=$1;`
	err := r.DB.Get(&user, query, id)
	return &user, err
}

func (r *UserRepository) GetUserByEmail(email string) (*User, error) {
	var user User
	query := `SELECT id, name, email, password, phone, created_at FROM users WHERE email=$1;`
	err := r.DB.Get(&user, query, email)
	return &user, err
}

func (r *UserRepository) UpdateUser(id int64, user *User) (*User, error) {
	query := `
		UPDATE users SET name=$1, password=$2, phone=$3
		WHERE id=$4
		RETURNING id, name, email, phone, created_at;
	`
	var updatedUser User
	err := r.DB.Get(&updatedUser, query, user.Name, user.Password, user.Phone, id)
	return &updatedUser, err
}

func (r *UserRepository) DeleteUser(id int64) error {
	query := `DELETE FROM users WHERE id=$1;`
	_, err := r.DB.Exec(query, id)
	return err
}
