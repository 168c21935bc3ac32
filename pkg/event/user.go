package event

// SourceAccountService owns all user events.
const SourceAccountService = "account-service"

// User event types.
const (
	TypeUserRegistered     = "USER_REGISTERED"
	TypeUserLogin          = "USER_LOGIN"
	TypeUserProfileUpdated = "USER_PROFILE_UPDATED"
	TypeUserStatusChanged  = "USER_STATUS_CHANGED"
	TypeUserDeleted        = "USER_DELETED"
)

var (
	UserRegistered     = Descriptor{Type: TypeUserRegistered, Source: SourceAccountService}
	UserLogin          = Descriptor{Type: TypeUserLogin, Source: SourceAccountService}
	UserProfileUpdated = Descriptor{Type: TypeUserProfileUpdated, Source: SourceAccountService}
	UserStatusChanged  = Descriptor{Type: TypeUserStatusChanged, Source: SourceAccountService}
	UserDeleted        = Descriptor{Type: TypeUserDeleted, Source: SourceAccountService}
)

// DeviceInfo describes the device a user event originated from. All fields
// are optional; an empty DeviceInfo is the required-field sentinel for
// payloads that must carry one.
type DeviceInfo struct {
	Platform   string `json:"platform,omitempty"`
	DeviceID   string `json:"deviceId,omitempty"`
	OSVersion  string `json:"osVersion,omitempty"`
	AppVersion string `json:"appVersion,omitempty"`
	DeviceName string `json:"deviceName,omitempty"`
}

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude],
// the geospatial storage convention.
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	Country     string     `json:"country,omitempty"`
	ZipCode     string     `json:"zipCode,omitempty"`
}

// UserInfo is the profile snapshot carried by registration and profile
// update events, aligned with the account service's user record.
type UserInfo struct {
	UserID           string   `json:"userId"`
	Phone            string   `json:"phone"`
	Name             string   `json:"name"`
	Email            string   `json:"email,omitempty"`
	UserType         string   `json:"userType"` // "buyer" or "seller"
	Location         GeoPoint `json:"location"`
	Avatar           string   `json:"avatar,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	BusinessName     string   `json:"businessName,omitempty"`
	BusinessCategory string   `json:"businessCategory,omitempty"`
	ServiceRadius    *float64 `json:"serviceRadius,omitempty"`
	IsVerified       bool     `json:"isVerified"`
	IsOnline         bool     `json:"isOnline,omitempty"`
	LastSeen         string   `json:"lastSeen,omitempty"`
	Status           string   `json:"status,omitempty"`
	DateJoined       string   `json:"dateJoined"`
}

type UserRegisteredData struct {
	Info UserInfo `json:"info"`
	// DeviceInfo and DeviceToken are required by the schema; adapters supply
	// an empty value when the source record has none.
	DeviceInfo  DeviceInfo `json:"deviceInfo"`
	DeviceToken string     `json:"deviceToken"`
}

type UserStatusChangedData struct {
	UserID               string        `json:"userId"`
	IsOnline             bool          `json:"isOnline"`
	PreviousOnlineStatus bool          `json:"previousOnlineStatus"`
	LastSeen             string        `json:"lastSeen"`
	Status               string        `json:"status,omitempty"`
	DeviceInfo           *ClientDevice `json:"deviceInfo,omitempty"`
}

// ClientDevice identifies the device behind a status or delivery event.
type ClientDevice struct {
	Platform string `json:"platform"`
	Version  string `json:"version"`
	DeviceID string `json:"deviceId"`
}

type UserDeletedData struct {
	UserID                string            `json:"userId"`
	DeletionReason        string            `json:"deletionReason"`
	DeletedBy             string            `json:"deletedBy"`
	DeletionType          string            `json:"deletionType"` // "soft" or "hard"
	AssociatedDataCleanup DataCleanupCounts `json:"associatedDataCleanup"`
}

// DataCleanupCounts summarizes what was removed alongside a user.
type DataCleanupCounts struct {
	Chats    int `json:"chats"`
	Requests int `json:"requests"`
	Offers   int `json:"offers"`
}

func NewUserRegistered(data UserRegisteredData, opts ...Option) Envelope[UserRegisteredData] {
	return New(UserRegistered, data, opts...)
}

// NewUserProfileUpdated reuses the registration payload: profile updates
// republish the full profile snapshot rather than a delta.
func NewUserProfileUpdated(data UserRegisteredData, opts ...Option) Envelope[UserRegisteredData] {
	return New(UserProfileUpdated, data, opts...)
}

func NewUserStatusChanged(data UserStatusChangedData, opts ...Option) Envelope[UserStatusChangedData] {
	return New(UserStatusChanged, data, opts...)
}

func NewUserDeleted(data UserDeletedData, opts ...Option) Envelope[UserDeletedData] {
	return New(UserDeleted, data, opts...)
}
