package stream

import "dcsmission/streamcore/internal/rpc"

// UnitsClient is the collaborator set StreamUnits needs: mission-wide
// enumeration/events plus per-unit and per-static transform polling.
type UnitsClient interface {
	rpc.MissionRPC
	rpc.UnitTransformService
}

// WeaponsClient is the collaborator set StreamWeapons needs.
type WeaponsClient interface {
	rpc.MissionRPC
	rpc.WeaponTransformService
}
