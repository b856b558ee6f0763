package internal

import "posbridge-server/internal/control_plane/usecases"

type TokenRequest struct {
	UserID     string `json:"userId"`
	DeviceUUID string `json:"deviceUuid"`
	Token      string `json:"token"`
}

func (r TokenRequest) ToTerminalToken() usecases.TerminalToken {
	return usecases.TerminalToken{
		UserID:     r.UserID,
		DeviceUUID: r.DeviceUUID,
		Token:      r.Token,
	}
}

type TokenResponse struct {
	DeviceID string `json:"deviceId"`
	Linked   bool   `json:"linked"`
}

type LinkRequest struct {
	DeviceID string `json:"deviceId"`
}
