package model

// Environment names accepted in environment.name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// KioskMode is the value of kiosk.mode.
type KioskMode string

const (
	KioskModeProduction KioskMode = "production"
	KioskModeTest       KioskMode = "test"
)
