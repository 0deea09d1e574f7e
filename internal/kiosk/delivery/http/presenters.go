package http

import "voice-ordering-kiosk/internal/model"

type resetResp struct {
	Status string `json:"status"`
}

type configResp struct {
	Mode            model.KioskMode `json:"mode"`
	InitialDistance int             `json:"initial_distance"`
}

func (h *handler) newConfigResp() configResp {
	distance := InitialDistanceProduction
	if h.mode == model.KioskModeTest {
		distance = InitialDistanceTest
	}
	return configResp{Mode: h.mode, InitialDistance: distance}
}
