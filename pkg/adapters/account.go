package adapters

import (
	"time"

	"github.com/lokalmarket/marketplace-commons/pkg/event"
)

// isoUTC renders a time as ISO-8601 UTC text, the only time representation
// allowed inside payloads.
func isoUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// AccountUser is the account service's native user record.
type AccountUser struct {
	UserID           string
	Phone            string
	Name             string
	Email            string
	UserType         string // "buyer" or "seller"
	Location         event.GeoPoint
	Avatar           string
	Bio              string
	BusinessName     string
	BusinessCategory string
	ServiceRadius    *float64
	IsVerified       bool
	DateJoined       time.Time
	IsOnline         bool
	LastSeen         time.Time
	Status           string
}

// ToUserRegistered maps an account user to the registration payload.
// DeviceInfo and DeviceToken are required by the schema: when the caller has
// neither, the empty DeviceInfo and empty token sentinels are used. The
// sentinel behavior is part of the contract, not incidental.
func ToUserRegistered(user AccountUser, deviceInfo *event.DeviceInfo, deviceToken string) event.UserRegisteredData {
	data := event.UserRegisteredData{
		Info: event.UserInfo{
			UserID:           user.UserID,
			Phone:            user.Phone,
			Name:             user.Name,
			Email:            user.Email,
			UserType:         user.UserType,
			Location:         user.Location,
			Avatar:           user.Avatar,
			Bio:              user.Bio,
			BusinessName:     user.BusinessName,
			BusinessCategory: user.BusinessCategory,
			ServiceRadius:    user.ServiceRadius,
			IsVerified:       user.IsVerified,
			IsOnline:         user.IsOnline,
			LastSeen:         isoUTC(user.LastSeen),
			Status:           user.Status,
			DateJoined:       isoUTC(user.DateJoined),
		},
		DeviceToken: deviceToken,
	}
	if deviceInfo != nil {
		data.DeviceInfo = *deviceInfo
	}
	return data
}

// ToUserStatusChanged maps an online-status transition to its payload.
func ToUserStatusChanged(userID string, isOnline, previousOnlineStatus bool, lastSeen time.Time, status string) event.UserStatusChangedData {
	return event.UserStatusChangedData{
		UserID:               userID,
		IsOnline:             isOnline,
		PreviousOnlineStatus: previousOnlineStatus,
		LastSeen:             isoUTC(lastSeen),
		Status:               status,
	}
}

// ToUserDeleted maps an account deletion to its payload.
func ToUserDeleted(userID, reason, deletedBy, deletionType string, cleanup event.DataCleanupCounts) event.UserDeletedData {
	return event.UserDeletedData{
		UserID:                userID,
		DeletionReason:        reason,
		DeletedBy:             deletedBy,
		DeletionType:          deletionType,
		AssociatedDataCleanup: cleanup,
	}
}
