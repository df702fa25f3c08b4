package services

import (
	"context"
	"net/http"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"time"
)

const (
	RosterActionList   = "list"
	RosterActionAdd    = "add"
	RosterActionDelete = "delete"
)

type RosterRequest struct {
	Action   string `json:"action"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

type RosterResponse struct {
	Success      bool          `json:"success"`
	Housekeepers []Housekeeper `json:"housekeepers,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// RosterService talks to the external housekeeper roster.
type RosterService struct {
	client  *http.Client
	baseURL string
	log     logger.Logger
}

func NewRosterService(baseURL string, timeout time.Duration) *RosterService {
	return &RosterService{
		client:  newRemoteClient(timeout),
		baseURL: baseURL,
		log:     logger.New("RosterService"),
	}
}

func (s *RosterService) List(ctx context.Context) ([]Housekeeper, error) {
	resp, err := s.call(ctx, "List", RosterRequest{Action: RosterActionList})
	if err != nil {
		return nil, err
	}
	if resp.Housekeepers == nil {
		return []Housekeeper{}, nil
	}
	return resp.Housekeepers, nil
}

func (s *RosterService) Add(ctx context.Context, name, email string) error {
	_, err := s.call(ctx, "Add", RosterRequest{Action: RosterActionAdd, Name: name, Email: email})
	return err
}

func (s *RosterService) Delete(ctx context.Context, name string) error {
	_, err := s.call(ctx, "Delete", RosterRequest{Action: RosterActionDelete, Name: name})
	return err
}

func (s *RosterService) call(ctx context.Context, operation string, req RosterRequest) (RosterResponse, error) {
	log := logger.NewWithContext(ctx, "RosterService").Function(operation)

	if s.baseURL == "" {
		return RosterResponse{}, log.ErrorWithType(ErrRemote, "roster service url is not configured")
	}

	var resp RosterResponse
	if err := doJSON(ctx, s.client, log, http.MethodPost, s.baseURL, req, &resp); err != nil {
		return RosterResponse{}, err
	}

	if !resp.Success {
		message := resp.Error
		if message == "" {
			message = "roster service reported failure"
		}
		return RosterResponse{}, log.ErrorWithType(ErrRemote, message, "action", req.Action)
	}

	log.Debug("Roster call succeeded", "action", req.Action)
	return resp, nil
}
