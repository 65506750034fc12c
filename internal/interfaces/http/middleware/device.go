// internal/interfaces/http/middleware/device.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/easyway-storefront/internal/config"
)

// DeviceHeader carries the device identity for non-browser clients
const DeviceHeader = "X-Device-ID"

const deviceIDKey = "device_id"

// Device resolves the calling device from the X-Device-ID header or the
// device cookie, issuing a new identity when neither is present.
func Device(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceHeader)
		if deviceID == "" {
			if cookie, err := c.Cookie(cfg.Session.DeviceCookie); err == nil {
				deviceID = cookie
			}
		}

		if deviceID != "" {
			if _, err := uuid.Parse(deviceID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Invalid device ID",
				})
				c.Abort()
				return
			}
		} else {
			deviceID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.Session.DeviceCookie, deviceID, int(cfg.Session.DeviceCookieTTL.Seconds()), "/", "", cfg.Session.SecureCookie, true)
		}

		c.Header(DeviceHeader, deviceID)
		c.Set(deviceIDKey, deviceID)
		c.Next()
	}
}

// GetDeviceIDFromContext extracts the device ID from gin context
func GetDeviceIDFromContext(c *gin.Context) (string, bool) {
	deviceID, exists := c.Get(deviceIDKey)
	if !exists {
		return "", false
	}
	id, ok := deviceID.(string)
	return id, ok
}
