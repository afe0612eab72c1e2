package dto

// ── Categories / units ────────────────────────────────────────────────────────

type AddCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type AddUnitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type NamedResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ── Contacts ──────────────────────────────────────────────────────────────────

type ContactRequest struct {
	Name    string `json:"name"    validate:"required,min=1,max=200"`
	Phone   string `json:"phone"   validate:"max=50"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Address string `json:"address" validate:"max=500"`
	Type    string `json:"type"    validate:"required,oneof=customer distributor sales_rep"`
}

type ContactResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Type    string `json:"type"`
}
