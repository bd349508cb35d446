package rotation

import (
	"cubeplanets/internal/engine"
	"fmt"
)

func init() {
	engine.RegisterScript("ClusterRotator", clusterRotatorFactory)
}

func clusterRotatorFactory(props engine.Props) (engine.Component, error) {
	s := DefaultSettings()
	s.MaxDistanceFromAxis = props.Float("max_distance_from_axis", s.MaxDistanceFromAxis)
	s.NeighbourDistance = props.Float("neighbour_distance", s.NeighbourDistance)

	policy, err := NewPolicy(props.String("policy", PolicyRotatable), s)
	if err != nil {
		return nil, err
	}
	r := NewClusterRotator(policy)
	r.Speed = props.Float("speed", r.Speed)
	if r.Speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %v", r.Speed)
	}
	r.FriendNames = props.Strings("friends")
	return r, nil
}
