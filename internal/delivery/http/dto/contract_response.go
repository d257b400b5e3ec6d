package dto

import (
	"time"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/contract"
)

type ContractResponse struct {
	ID                uuid.UUID  `json:"id"`
	MissionID         uuid.UUID  `json:"mission_id"`
	CandidateID       uuid.UUID  `json:"candidate_id"`
	EmployerID        uuid.UUID  `json:"employer_id"`
	Document          string     `json:"document"`
	CandidateSignedAt *time.Time `json:"candidate_signed_at,omitempty"`
	EmployerSignedAt  *time.Time `json:"employer_signed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func NewContractResponse(c contract.Contract) ContractResponse {
	return ContractResponse{
		ID:                c.ID,
		MissionID:         c.MissionID,
		CandidateID:       c.CandidateID,
		EmployerID:        c.EmployerID,
		Document:          c.Document,
		CandidateSignedAt: c.CandidateSignedAt,
		EmployerSignedAt:  c.EmployerSignedAt,
		CreatedAt:         c.CreatedAt,
	}
}
