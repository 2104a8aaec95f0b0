// Package constants holds shared domain-level constants.
package constants

const (
	// Environment names
	EnvDevelop    = "develop"
	EnvProduction = "production"

	// Pub/Sub provider names
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"

	// Collection names in the document store
	CollectionUsers         = "users"
	CollectionDeviceTokens  = "devicetokens"
	CollectionHistories     = "histories"
	CollectionNotifications = "notifications"
	CollectionDetections    = "detections"

	// AlertMessage is the push body sent when the alert class is detected.
	AlertMessage = "Rip current detected in image"

	// RegionAlertMessage is the push body for tracked-region events.
	RegionAlertMessage = "Object detected in tracked region"
)
