package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"supanos/internal/model"
	"supanos/internal/repository"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username        string     `json:"username" validate:"required,max=255"`
	Password        string     `json:"password" validate:"required,min=6"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	FirstName       *string    `json:"firstName"`
	LastName        *string    `json:"lastName"`
	ProfileImageURL *string    `json:"profileImageUrl"`
	Role            model.Role `json:"role" validate:"omitempty,oneof=admin staff user"`
	IsActive        *bool      `json:"isActive"`
}

// UpdateUserRequest is the body of PATCH /api/users/:id.
type UpdateUserRequest struct {
	Username        *string     `json:"username" validate:"omitnil,min=1,max=255"`
	Password        *string     `json:"password" validate:"omitnil,min=6"`
	Email           *string     `json:"email" validate:"omitnil,email"`
	FirstName       *string     `json:"firstName"`
	LastName        *string     `json:"lastName"`
	ProfileImageURL *string     `json:"profileImageUrl"`
	Role            *model.Role `json:"role" validate:"omitnil,oneof=admin staff user"`
	IsActive        *bool       `json:"isActive"`
}

// fields excludes the password, which the service hashes separately.
func (r UpdateUserRequest) fields() repository.Fields {
	f := repository.Fields{}
	if r.Username != nil {
		f["username"] = *r.Username
	}
	if r.Email != nil {
		f["email"] = *r.Email
	}
	if r.FirstName != nil {
		f["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		f["last_name"] = *r.LastName
	}
	if r.ProfileImageURL != nil {
		f["profile_image_url"] = *r.ProfileImageURL
	}
	if r.Role != nil {
		f["role"] = string(*r.Role)
	}
	if r.IsActive != nil {
		f["is_active"] = *r.IsActive
	}
	return f
}

// CategoryRequest is the body of POST /api/menu/categories.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	Order       int     `json:"order"`
}

// UpdateCategoryRequest is the body of PATCH /api/menu/categories/:id.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

func (r UpdateCategoryRequest) fields() repository.Fields {
	f := repository.Fields{}
	if r.Name != nil {
		f["name"] = *r.Name
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	if r.Order != nil {
		f["order"] = *r.Order
	}
	return f
}

// MenuItemRequest is the body of POST /api/menu/items.
type MenuItemRequest struct {
	CategoryID  uuid.UUID       `json:"categoryId" validate:"required"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0,price"`
	ImageURL    *string         `json:"imageUrl"`
	IsAvailable *bool           `json:"isAvailable"`
	Tags        []string        `json:"tags"`
	SpicyLevel  *int            `json:"spicyLevel" validate:"omitnil,min=0,max=5"`
}

// UpdateMenuItemRequest is the body of PATCH /api/menu/items/:id.
type UpdateMenuItemRequest struct {
	CategoryID  *uuid.UUID       `json:"categoryId"`
	Name        *string          `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitnil,gt=0,price"`
	ImageURL    *string          `json:"imageUrl"`
	IsAvailable *bool            `json:"isAvailable"`
	Tags        *[]string        `json:"tags"`
	SpicyLevel  *int             `json:"spicyLevel" validate:"omitnil,min=0,max=5"`
}

func (r UpdateMenuItemRequest) fields() repository.Fields {
	f := repository.Fields{}
	if r.CategoryID != nil {
		f["category_id"] = *r.CategoryID
	}
	if r.Name != nil {
		f["name"] = *r.Name
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	if r.Price != nil {
		f["price"] = *r.Price
	}
	if r.ImageURL != nil {
		f["image_url"] = *r.ImageURL
	}
	if r.IsAvailable != nil {
		f["is_available"] = *r.IsAvailable
	}
	if r.Tags != nil {
		f["tags"] = model.StringList(*r.Tags)
	}
	if r.SpicyLevel != nil {
		f["spicy_level"] = *r.SpicyLevel
	}
	return f
}

// EventRequest is the body of POST /api/events.
type EventRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description *string         `json:"description"`
	DateTime    time.Time       `json:"dateTime" validate:"required"`
	SportType   model.SportType `json:"sportType" validate:"required,oneof=NFL MLB Custom"`
	ImageURL    *string         `json:"imageUrl"`
	IsFeatured  bool            `json:"isFeatured"`
}

// UpdateEventRequest is the body of PATCH /api/events/:id.
type UpdateEventRequest struct {
	Title       *string          `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string          `json:"description"`
	DateTime    *time.Time       `json:"dateTime"`
	SportType   *model.SportType `json:"sportType" validate:"omitnil,oneof=NFL MLB Custom"`
	ImageURL    *string          `json:"imageUrl"`
	IsFeatured  *bool            `json:"isFeatured"`
}

func (r UpdateEventRequest) fields() repository.Fields {
	f := repository.Fields{}
	if r.Title != nil {
		f["title"] = *r.Title
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	if r.DateTime != nil {
		f["date_time"] = r.DateTime.UTC()
	}
	if r.SportType != nil {
		f["sport_type"] = string(*r.SportType)
	}
	if r.ImageURL != nil {
		f["image_url"] = *r.ImageURL
	}
	if r.IsFeatured != nil {
		f["is_featured"] = *r.IsFeatured
	}
	return f
}

// ReservationRequest is the body of POST /api/reservations.
type ReservationRequest struct {
	FullName string                  `json:"fullName" validate:"required,max=255"`
	Email    string                  `json:"email" validate:"required,email"`
	Phone    string                  `json:"phone" validate:"required,max=50"`
	DateTime time.Time               `json:"dateTime" validate:"required"`
	People   int                     `json:"people" validate:"required,min=1"`
	Notes    *string                 `json:"notes"`
	Status   model.ReservationStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}

// UpdateReservationRequest is the body of PATCH /api/reservations/:id.
type UpdateReservationRequest struct {
	FullName *string                  `json:"fullName" validate:"omitnil,min=1,max=255"`
	Email    *string                  `json:"email" validate:"omitnil,email"`
	Phone    *string                  `json:"phone" validate:"omitnil,min=1,max=50"`
	DateTime *time.Time               `json:"dateTime"`
	People   *int                     `json:"people" validate:"omitnil,min=1"`
	Notes    *string                  `json:"notes"`
	Status   *model.ReservationStatus `json:"status" validate:"omitnil,oneof=pending confirmed cancelled"`
}

func (r UpdateReservationRequest) fields() repository.Fields {
	f := repository.Fields{}
	if r.FullName != nil {
		f["full_name"] = *r.FullName
	}
	if r.Email != nil {
		f["email"] = *r.Email
	}
	if r.Phone != nil {
		f["phone"] = *r.Phone
	}
	if r.DateTime != nil {
		f["date_time"] = r.DateTime.UTC()
	}
	if r.People != nil {
		f["people"] = *r.People
	}
	if r.Notes != nil {
		f["notes"] = *r.Notes
	}
	if r.Status != nil {
		f["status"] = string(*r.Status)
	}
	return f
}

// SettingRequest is the body of POST /api/settings.
type SettingRequest struct {
	Key   string     `json:"key" validate:"required,max=191"`
	Value model.JSON `json:"value" validate:"jsonvalue"`
}
