package handlers

import (
	"go.uber.org/zap"

	"github.com/smartcard-app/smartcard-golang/internal/analytics"
	"github.com/smartcard-app/smartcard-golang/internal/auth"
	"github.com/smartcard-app/smartcard-golang/internal/repository"
	"github.com/smartcard-app/smartcard-golang/internal/storefront"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Repo           repository.Repository
	Storefront     *storefront.Assembler
	Analytics      *analytics.Dispatcher
	Auth           *auth.Manager
	Log            *zap.Logger
	PlatformDomain string
}
