package user

type createRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type createdUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// UpdateFields carries the optional fields of an update request. A nil
// pointer means the key was absent; a present key applies even when the
// value is empty.
type UpdateFields struct {
	FullName *string `json:"fullname"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
}

type updateRequest struct {
	ID string `json:"id"`
	UpdateFields
}
