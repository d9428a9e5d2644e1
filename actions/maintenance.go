package actions

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"gitlab.com/paramountdax-exchange/site_maintenance/events"
	"gitlab.com/paramountdax-exchange/site_maintenance/featureflags"
	"gitlab.com/paramountdax-exchange/site_maintenance/httputils"
	"gitlab.com/paramountdax-exchange/site_maintenance/maintenance"
	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

// CheckMaintenanceMode answers with the maintenance page while the site is in
// maintenance and the requester holds none of the allowed roles
func (actions *Actions) CheckMaintenanceMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !featureflags.IsEnabledOr(featureflags.MaintenanceGate, true) {
			c.Next()
			return
		}
		event := events.RequestEvent{
			Path:           c.Request.URL.Path,
			Roles:          getRoles(c),
			AcceptLanguage: c.GetHeader("Accept-Language"),
			At:             time.Now(),
		}
		interruption := actions.dispatcher.DispatchRequest(c.Request.Context(), event)
		if interruption == nil {
			c.Next()
			return
		}
		c.Set("maintenance_reason", interruption.Reason.String())

		contentType := "text/html; charset=utf-8"
		for key, value := range interruption.Headers {
			if key == "Content-Type" {
				contentType = value
				continue
			}
			c.Header(key, value)
		}
		c.Data(interruption.Status, contentType, interruption.Body)
		c.Abort()
	}
}

// GetMaintenanceStatus godoc
// swagger:route GET /admin/maintenance admin get_maintenance
// Get the maintenance settings and the current decision
//
//	Responses:
//	  200: MaintenanceStatus
func (actions *Actions) GetMaintenanceStatus(c *gin.Context) {
	status, err := actions.maintenance.Status(c.Request.Context())
	if err != nil {
		abortWithError(c, ServerError, "Unable to load maintenance status")
		return
	}
	c.JSON(OK, status)
}

// UpdateMaintenanceSettings godoc
// swagger:route PUT /admin/maintenance admin update_maintenance
// Save the maintenance settings form
//
//	Responses:
//	  200: MaintenanceStatus
//	  400: RequestError
//	  422: ValidationError
func (actions *Actions) UpdateMaintenanceSettings(c *gin.Context) {
	form := model.MaintenanceSettingsForm{}
	if err := c.ShouldBind(&form); err != nil {
		abortWithError(c, BadRequest, err.Error())
		return
	}
	_, err := actions.maintenance.SaveSettings(c.Request.Context(), form)
	if err != nil {
		var verr maintenance.ValidationError
		if errors.As(err, &verr) {
			c.AbortWithStatusJSON(ValidationFailed, httputils.ValidationError{Error: verr.Message, Field: verr.Field})
			return
		}
		abortWithError(c, ServerError, "Unable to save maintenance settings")
		return
	}
	actions.GetMaintenanceStatus(c)
}

// GetMaintenanceNotices godoc
// swagger:route GET /admin/maintenance/notices admin get_maintenance_notices
// Get the dashboard banners. The completed notice is only returned once.
//
//	Responses:
//	  200: []Notice
func (actions *Actions) GetMaintenanceNotices(c *gin.Context) {
	notices, err := actions.maintenance.Notices(c.Request.Context())
	if err != nil && notices == nil {
		abortWithError(c, ServerError, "Unable to load maintenance notices")
		return
	}
	if err != nil {
		log := getlog(c)
		log.Error().Err(err).Str("section", "maintenance").Msg("Unable to clear completed notice")
	}
	c.JSON(OK, notices)
}

// PreviewMaintenance godoc
// swagger:route GET /admin/maintenance/preview admin preview_maintenance
// Evaluate the maintenance state at the given site time without applying any change
//
//	Responses:
//	  200: Evaluation
//	  400: RequestError
func (actions *Actions) PreviewMaintenance(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		site, err := actions.maintenance.Repository().LoadSiteSettings(c.Request.Context())
		if err != nil {
			abortWithError(c, ServerError, "Unable to load site settings")
			return
		}
		resolved := maintenance.ResolveTimestamp(raw, maintenance.SiteLocation(site))
		if resolved == nil {
			abortWithError(c, BadRequest, "Invalid time, expected format YYYY-MM-DDTHH:MM")
			return
		}
		at = *resolved
	}
	ev, err := actions.maintenance.Preview(c.Request.Context(), at)
	if err != nil {
		abortWithError(c, ServerError, "Unable to evaluate maintenance state")
		return
	}
	c.JSON(OK, gin.H{
		"at":        ev.Now,
		"decision":  ev.Decision,
		"mutations": ev.Mutations,
		"updating":  ev.Update.Updating,
	})
}

// GetRoles godoc
// swagger:route GET /admin/roles admin get_roles
// List the roles that can be allowed through maintenance
//
//	Responses:
//	  200: []string
func (actions *Actions) GetRoles(c *gin.Context) {
	roles := []string{}
	for _, role := range model.EditableRoles() {
		roles = append(roles, role.String())
	}
	c.JSON(OK, roles)
}

// StartUpdate godoc
// swagger:route POST /admin/updates/start admin start_update
// Announce the start of a plugin, theme or core update
//
//	Responses:
//	  200: FlashMessage
//	  400: RequestError
func (actions *Actions) StartUpdate(c *gin.Context) {
	actions.notifyUpdate(c, model.UpdatePhaseStart)
}

// FinishUpdate godoc
// swagger:route POST /admin/updates/finish admin finish_update
// Announce the end of a plugin, theme or core update
//
//	Responses:
//	  200: FlashMessage
//	  400: RequestError
func (actions *Actions) FinishUpdate(c *gin.Context) {
	actions.notifyUpdate(c, model.UpdatePhaseFinish)
}

func (actions *Actions) notifyUpdate(c *gin.Context, phase model.UpdatePhase) {
	notification := model.UpdateNotification{}
	if err := c.ShouldBind(&notification); err != nil {
		abortWithError(c, BadRequest, err.Error())
		return
	}
	if !notification.Type.IsValid() {
		abortWithError(c, BadRequest, "Invalid update type")
		return
	}
	if notification.Channel == "" {
		notification.Channel = model.UpdateChannelInstaller
		if notification.Type == model.UpdateTypeCore {
			notification.Channel = model.UpdateChannelAutoUpdate
		}
	}
	err := actions.dispatcher.DispatchUpdate(c.Request.Context(), events.UpdateEvent{
		Type:    notification.Type,
		Channel: notification.Channel,
		Phase:   phase,
		At:      time.Now(),
	})
	if err != nil {
		abortWithError(c, ServerError, "Unable to process update notification")
		return
	}
	c.JSON(OK, httputils.FlashMessage{FlashMessage: "Update " + string(phase) + " registered"})
}

// GetDefaultMaintenance godoc
// swagger:route GET /admin/updates/default-maintenance admin default_maintenance
// Tell the host platform if it should show its own maintenance screen
//
//	Responses:
//	  200: DefaultMaintenance
func (actions *Actions) GetDefaultMaintenance(c *gin.Context) {
	context := c.Query("context")
	enable := c.DefaultQuery("enable", "true") == "true"
	c.JSON(OK, gin.H{
		"context": context,
		"enabled": actions.dispatcher.FilterDefaultMaintenance(enable, context),
	})
}
