package rosmsg

// stockDefinition is a message that ships with ROS. Full definitions carry
// its own text rather than the layout of the schema mapped onto it.
type stockDefinition struct {
	body string
	deps []string
}

var stockDefinitions = map[string]stockDefinition{
	"geometry_msgs/Point": {
		body: "float64 x\nfloat64 y\nfloat64 z\n",
	},
	"geometry_msgs/Vector3": {
		body: "float64 x\nfloat64 y\nfloat64 z\n",
	},
	"geometry_msgs/Quaternion": {
		body: "float64 x\nfloat64 y\nfloat64 z\nfloat64 w\n",
	},
	"geometry_msgs/Pose": {
		body: "geometry_msgs/Point position\ngeometry_msgs/Quaternion orientation\n",
		deps: []string{"geometry_msgs/Point", "geometry_msgs/Quaternion"},
	},
}
