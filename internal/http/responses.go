package http

import (
	"time"

	"timesheet-api/internal/domain"
)

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type ProjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
	CreatedAt   string `json:"createdAt"`
}

type TimesheetResponse struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	ProjectID int64            `json:"projectId"`
	Date      string           `json:"date"`
	Hours     float64          `json:"hours"`
	Note      string           `json:"note"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
	Project   *ProjectResponse `json:"project,omitempty"`
}

type HotelResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	OwnerID   int64  `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ReceiptResponse struct {
	ID          int64  `json:"id"`
	TimesheetID int64  `json:"timesheetId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	CreatedAt   string `json:"createdAt"`
}

type ReceiptURLResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func projectToResponse(project domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
	}
}

func timesheetToResponse(sheet domain.Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:        sheet.ID,
		UserID:    sheet.UserID,
		ProjectID: sheet.ProjectID,
		Date:      domain.FormatDate(sheet.Date),
		Hours:     sheet.Hours,
		Note:      sheet.Note,
		CreatedAt: sheet.CreatedAt.Format(time.RFC3339),
		UpdatedAt: sheet.UpdatedAt.Format(time.RFC3339),
	}
	if sheet.Project != nil {
		project := projectToResponse(*sheet.Project)
		resp.Project = &project
	}
	return resp
}

func hotelToResponse(hotel domain.Hotel) HotelResponse {
	return HotelResponse{
		ID:        hotel.ID,
		Name:      hotel.Name,
		Address:   hotel.Address,
		OwnerID:   hotel.OwnerID,
		CreatedAt: hotel.CreatedAt.Format(time.RFC3339),
		UpdatedAt: hotel.UpdatedAt.Format(time.RFC3339),
	}
}

func receiptToResponse(receipt domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:          receipt.ID,
		TimesheetID: receipt.TimesheetID,
		Filename:    receipt.Filename,
		ContentType: receipt.ContentType,
		Size:        receipt.Size,
		CreatedAt:   receipt.CreatedAt.Format(time.RFC3339),
	}
}
