package service

import "teambalancer/internal/apperror"

// ServiceError is a sentinel error of the service layer
type ServiceError string

func (e ServiceError) Error() string {
	return string(e)
}

const (
	ErrInvalidVote        ServiceError = "invalid vote"
	ErrInvalidCredentials ServiceError = "invalid credentials"
	ErrInvalidToken       ServiceError = "invalid or expired token"
)

func groupNotFound() *apperror.AppError {
	return apperror.NewNotFoundError("Group not found")
}

func playerNotFound() *apperror.AppError {
	return apperror.NewNotFoundError("Player not found")
}

func sessionNotFound() *apperror.AppError {
	return apperror.NewNotFoundError("Session not found")
}
