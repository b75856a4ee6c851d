package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/repository"
)

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrNotComplaintOwner = errors.New("complaint belongs to another user")
)

type ComplaintService struct {
	complaintRepo *repository.ComplaintRepository
	userRepo      *repository.UserRepository
}

func NewComplaintService(complaintRepo *repository.ComplaintRepository, userRepo *repository.UserRepository) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
	}
}

// Submit records a new complaint.
func (s *ComplaintService) Submit(userID int64, content string) (*model.Complaint, error) {
	complaint := &model.Complaint{
		UserID:  userID,
		Content: content,
		Status:  model.ComplaintStatusPending,
	}
	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// ListByUser returns the user's complaints, newest first.
func (s *ComplaintService) ListByUser(userID int64) ([]*model.Complaint, error) {
	return s.complaintRepo.ListByUserID(userID)
}

// Delete removes a complaint owned by the user.
func (s *ComplaintService) Delete(userID, complaintID int64) error {
	complaint, err := s.get(complaintID)
	if err != nil {
		return err
	}
	if complaint.UserID != userID {
		return ErrNotComplaintOwner
	}
	return s.complaintRepo.Delete(complaint.ID)
}

// ComplaintWithUser pairs a complaint with its author for the admin view.
type ComplaintWithUser struct {
	Complaint *model.Complaint `json:"complaint"`
	UserName  string           `json:"user_name"`
	UserEmail string           `json:"user_email"`
}

// ListAll returns every complaint with author details, newest first.
func (s *ComplaintService) ListAll() ([]*ComplaintWithUser, error) {
	complaints, err := s.complaintRepo.ListAll()
	if err != nil {
		return nil, err
	}

	items := make([]*ComplaintWithUser, 0, len(complaints))
	for _, complaint := range complaints {
		item := &ComplaintWithUser{Complaint: complaint}
		if user, err := s.userRepo.GetByID(complaint.UserID); err == nil {
			item.UserName = user.Name
			item.UserEmail = user.Email
		}
		items = append(items, item)
	}
	return items, nil
}

// Respond stores the admin's reply on the complaint.
func (s *ComplaintService) Respond(complaintID int64, response string) error {
	complaint, err := s.get(complaintID)
	if err != nil {
		return err
	}

	complaint.AdminResponse = response
	return s.complaintRepo.Update(complaint)
}

// Resolve marks the complaint as handled.
func (s *ComplaintService) Resolve(complaintID int64) error {
	complaint, err := s.get(complaintID)
	if err != nil {
		return err
	}

	complaint.Status = model.ComplaintStatusResolved
	return s.complaintRepo.Update(complaint)
}

func (s *ComplaintService) get(complaintID int64) (*model.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return complaint, nil
}
