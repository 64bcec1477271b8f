package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	cal "github.com/salonbelle/salon-scheduler/internal/domain/calendar"
	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/middleware"
	ucCalendar "github.com/salonbelle/salon-scheduler/internal/usecase/calendar"
)

type CalendarHandler struct {
	aggregateUC *ucCalendar.AggregateWeek
	loc         *time.Location
}

func NewCalendarHandler(aggregateUC *ucCalendar.AggregateWeek, loc *time.Location) *CalendarHandler {
	return &CalendarHandler{
		aggregateUC: aggregateUC,
		loc:         loc,
	}
}

// Week returns the merged calendar for the week containing ?date=
// (defaults to today). Fail-closed: on any fetch error the response
// carries zero events and an error flag, never a partial week.
func (h *CalendarHandler) Week(c *gin.Context) {
	user := middleware.CurrentUser(c)

	anchor := time.Now().In(h.loc)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		anchor = parsed
	}

	window := cal.WeekOf(anchor)

	events, err := h.aggregateUC.Execute(c.Request.Context(), user, user.ID, window)
	if err != nil {
		c.JSON(500, gin.H{
			"error_code": "aggregation_failed",
			"week_start": window.Start,
			"week_end":   window.End,
			"events":     []cal.Event{},
		})
		return
	}

	c.JSON(200, gin.H{
		"week_start": window.Start,
		"week_end":   window.End,
		"events":     events,
		"total":      len(events),
	})
}
