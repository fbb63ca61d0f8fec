package netcomponents

import "github.com/yohamta/donburi"

type NetKinematicsData struct {
	VY    float64
	Speed float64
	Yaw   float64
}

var NetKinematics = donburi.NewComponentType[NetKinematicsData]()

// LerpNetKinematics interpolates between two kinematic snapshots
func LerpNetKinematics(from, to NetKinematicsData, t float64) *NetKinematicsData {
	return &NetKinematicsData{
		VY:    from.VY + (to.VY-from.VY)*t,
		Speed: from.Speed + (to.Speed-from.Speed)*t,
		Yaw:   from.Yaw + (to.Yaw-from.Yaw)*t,
	}
}
