package jobs

import (
	"context"
	"time"

	"github.com/omondi3768/turf_booking/services"
)

// DailyRevenue returns the cron closure that re-aggregates the previous
// day's revenue for every active turf. Scheduled shortly after midnight so
// the day being summed is closed.
func DailyRevenue(revenue *services.RevenueService) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		yesterday := time.Now().AddDate(0, 0, -1).Format(services.DateLayout)
		revenue.AggregateDaily(ctx, yesterday)
	}
}
