package service

import (
	"aba_assessment_backend/internal/repository"
)

// DashboardOverview is the clinician landing-page aggregate.
type DashboardOverview struct {
	TotalChildren      int64            `json:"totalChildren"`
	SessionsByStatus   map[string]int64 `json:"sessionsByStatus"`
	UsersByRole        map[string]int64 `json:"usersByRole"`
	CompletedSessions  int64            `json:"completedSessions"`
	InProgressSessions int64            `json:"inProgressSessions"`
}

type DashboardService struct {
	ChildRepo   *repository.ChildRepository
	SessionRepo *repository.SessionRepository
	UserRepo    *repository.UserRepository
}

func NewDashboardService(childRepo *repository.ChildRepository, sessionRepo *repository.SessionRepository, userRepo *repository.UserRepository) *DashboardService {
	return &DashboardService{
		ChildRepo:   childRepo,
		SessionRepo: sessionRepo,
		UserRepo:    userRepo,
	}
}

func (s *DashboardService) Overview() (*DashboardOverview, error) {
	totalChildren, err := s.ChildRepo.Count()
	if err != nil {
		return nil, err
	}

	sessionCounts, err := s.SessionRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	userCounts, err := s.UserRepo.CountByRole()
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		TotalChildren:      totalChildren,
		SessionsByStatus:   sessionCounts,
		UsersByRole:        userCounts,
		CompletedSessions:  sessionCounts["completed"],
		InProgressSessions: sessionCounts["in-progress"],
	}, nil
}
