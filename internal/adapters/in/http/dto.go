package http

import (
	"time"

	"deliverytracker/internal/core/application/usecases/queries"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/model/user"
)

type addressRequest struct {
	CEP        string `json:"cep"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
}

type createOrderRequest struct {
	OriginAddress      addressRequest `json:"origin_address"`
	DestinationAddress addressRequest `json:"destination_address"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type roleUpdateRequest struct {
	Role string `json:"role"`
}

type registerUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// AddressResponse is a stored address.
type AddressResponse struct {
	ID         int64    `json:"id"`
	CEP        string   `json:"cep"`
	Street     string   `json:"street"`
	Number     string   `json:"number"`
	Complement *string  `json:"complement"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// OrderResponse is the full detail of an order.
type OrderResponse struct {
	ID                 int64           `json:"id"`
	TrackingCode       string          `json:"tracking_code"`
	Status             string          `json:"status"`
	StatusLabel        string          `json:"status_label"`
	OwnerID            int64           `json:"owner_id"`
	OriginAddress      *AddressResponse `json:"origin_address,omitempty"`
	DestinationAddress *AddressResponse `json:"destination_address,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// OrderListItem is one row of an order listing.
type OrderListItem struct {
	ID           int64     `json:"id"`
	TrackingCode string    `json:"tracking_code"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// TrackingPlace is the public part of an address.
type TrackingPlace struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// TrackingEventResponse is one timeline entry.
type TrackingEventResponse struct {
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrackingResponse is the anonymous tracking view.
type TrackingResponse struct {
	TrackingCode string                  `json:"tracking_code"`
	Status       string                  `json:"status"`
	StatusLabel  string                  `json:"status_label"`
	Origin       TrackingPlace           `json:"origin"`
	Destination  TrackingPlace           `json:"destination"`
	Events       []TrackingEventResponse `json:"events"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// UserResponse is an account without credentials.
type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
}

// TokenResponse follows the OAuth2 password grant response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// StatusCountResponse is the number of orders in one status.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// OrderStatusSummaryResponse counts orders per status.
type OrderStatusSummaryResponse struct {
	Total    int64                 `json:"total"`
	ByStatus []StatusCountResponse `json:"by_status"`
}

func addressFromView(v queries.AddressView) AddressResponse {
	return AddressResponse{
		ID:         v.ID,
		CEP:        v.PostalCode,
		Street:     v.Street,
		Number:     v.Number,
		Complement: v.Complement,
		City:       v.City,
		State:      v.Region,
		Latitude:   v.Latitude,
		Longitude:  v.Longitude,
	}
}

func orderFromView(v queries.OrderView) OrderResponse {
	origin := addressFromView(v.Origin)
	destination := addressFromView(v.Destination)
	return OrderResponse{
		ID:                 v.ID,
		TrackingCode:       v.TrackingCode,
		Status:             v.Status,
		StatusLabel:        v.StatusLabel,
		OwnerID:            v.OwnerID,
		OriginAddress:      &origin,
		DestinationAddress: &destination,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

// orderFromDomain renders a stored order without its addresses.
func orderFromDomain(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:           o.ID(),
		TrackingCode: o.TrackingCode().String(),
		Status:       o.Status().String(),
		StatusLabel:  o.Status().Label(),
		OwnerID:      o.OwnerID(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func orderListFromSummaries(rows []queries.OrderSummary) []OrderListItem {
	items := make([]OrderListItem, len(rows))
	for i, r := range rows {
		items[i] = OrderListItem{
			ID:           r.ID,
			TrackingCode: r.TrackingCode,
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
		}
	}
	return items
}

func trackingFromView(v queries.TrackingView) TrackingResponse {
	events := make([]TrackingEventResponse, len(v.Events))
	for i, e := range v.Events {
		events[i] = TrackingEventResponse{
			Status:      e.Status,
			StatusLabel: e.StatusLabel,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		}
	}

	return TrackingResponse{
		TrackingCode: v.TrackingCode,
		Status:       v.Status,
		StatusLabel:  v.StatusLabel,
		Origin:       TrackingPlace{City: v.Origin.City, State: v.Origin.Region},
		Destination:  TrackingPlace{City: v.Destination.City, State: v.Destination.Region},
		Events:       events,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func userFromDomain(u *user.User) UserResponse {
	var fullName *string
	if name := u.FullName(); name != "" {
		fullName = &name
	}
	return UserResponse{
		ID:       u.ID(),
		Email:    u.Email(),
		FullName: fullName,
		Role:     u.Role().String(),
	}
}

func userFromView(v queries.UserView) UserResponse {
	return UserResponse{
		ID:       v.ID,
		Email:    v.Email,
		FullName: v.FullName,
		Role:     v.Role,
	}
}
