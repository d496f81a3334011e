package geometry

import "github.com/go-gl/mathgl/mgl64"

// ProjectToPlane moves objectPosition along the line of sight onto the plane located
// planeDistance in front of the camera. Gizmos are drawn there so that they keep a
// constant on-screen size.
func ProjectToPlane(cameraPosition, cameraForward, objectPosition mgl64.Vec3, planeDistance float64) mgl64.Vec3 {
	cameraToObject := objectPosition.Sub(cameraPosition)
	scaleFactor := planeDistance / cameraToObject.Dot(cameraForward)
	return cameraPosition.Add(cameraToObject.Mul(scaleFactor))
}
