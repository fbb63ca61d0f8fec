package protocol

import (
	"github.com/leap-fish/necs/esync"

	"github.com/rabbitwine/rabbitwine-mp/shared/netcomponents"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPosition    uint = 10
	SyncIDNetKinematics  uint = 11
	SyncIDNetPlayerState uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPosition   uint8 = 10
	InterpIDNetKinematics uint8 = 11
)

// RegisterComponents registers all network components with necs for
// serialization. Both server and client must call it before any network
// operations.
func RegisterComponents() error {
	// Register with interpolation for smooth client-side rendering
	if err := esync.RegisterComponent(
		SyncIDNetPosition,
		netcomponents.NetPositionData{},
		netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetKinematics,
		netcomponents.NetKinematicsData{},
		netcomponents.NetKinematics,
		esync.WithInterpFn(InterpIDNetKinematics, netcomponents.LerpNetKinematics),
	); err != nil {
		return err
	}

	// PlayerState: no interpolation (discrete state changes)
	return esync.RegisterComponent(
		SyncIDNetPlayerState,
		netcomponents.NetPlayerStateData{},
		netcomponents.NetPlayerState,
	)
}
