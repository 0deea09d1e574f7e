package http

const (
	LogPrefixReset     = "internal.kiosk.delivery.http.Reset"
	LogPrefixInventory = "internal.kiosk.delivery.http.Inventory"
)

// Distance in centimetres at which the display wakes up.
const (
	InitialDistanceProduction = 200
	InitialDistanceTest       = 50
)

const statusReset = "reset"
