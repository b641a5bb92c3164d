package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// Resource names double as URL path segments.
const (
	ResourceProfile          = "profile"
	ResourceContacts         = "contacts"
	ResourceProgress         = "progress"
	ResourceLetter           = "letter-from-future-self"
	ResourceTreatmentPlan    = "treatment-plan"
	ResourcePreTreatment     = "pre-treatment-state"
	ResourceGoals            = "goals"
	ResourceStrengths        = "strengths-and-resources"
	ResourceDiaryEntry       = "diary-entry"
	ResourceWeeklyReview     = "weekly-review"
	ResourceProgressTracking = "progress-tracking"
	ResourceSudsCheckin      = "suds-checkin"
	ResourceSudsList         = "suds-list"
	ResourceSudsCalendar     = "suds-calendar"
	ResourceCopingPlan       = "suds-coping-plan"
)

func get(resource string) endpoint {
	return endpoint{method: http.MethodGet, resource: resource, auth: true}
}

func put(resource string) endpoint {
	return endpoint{method: http.MethodPut, resource: resource, auth: true}
}

func getByDate(resource, date string) (endpoint, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return endpoint{}, err
	}
	ep := get(resource)
	ep.key = url.PathEscape(date)
	return ep, nil
}

func putByDate(resource, date string) (endpoint, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return endpoint{}, err
	}
	ep := put(resource)
	ep.key = url.PathEscape(date)
	return ep, nil
}

func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	return call[domain.Profile](ctx, c, get(ResourceProfile), nil)
}

func (c *Client) Contacts(ctx context.Context) ([]domain.ContactRecord, error) {
	return call[[]domain.ContactRecord](ctx, c, get(ResourceContacts), nil)
}

func (c *Client) Progress(ctx context.Context) (domain.Progress, error) {
	return call[domain.Progress](ctx, c, get(ResourceProgress), nil)
}

func (c *Client) Letter(ctx context.Context) (domain.Letter, error) {
	return call[domain.Letter](ctx, c, get(ResourceLetter), nil)
}

func (c *Client) UpdateLetter(ctx context.Context, l domain.Letter) (domain.Letter, error) {
	return call[domain.Letter](ctx, c, put(ResourceLetter), l)
}

func (c *Client) TreatmentPlan(ctx context.Context) (domain.TreatmentPlan, error) {
	return call[domain.TreatmentPlan](ctx, c, get(ResourceTreatmentPlan), nil)
}

func (c *Client) PreTreatmentState(ctx context.Context) (domain.PreTreatmentState, error) {
	return call[domain.PreTreatmentState](ctx, c, get(ResourcePreTreatment), nil)
}

func (c *Client) UpdatePreTreatmentState(ctx context.Context, s domain.PreTreatmentState) (domain.PreTreatmentState, error) {
	return call[domain.PreTreatmentState](ctx, c, put(ResourcePreTreatment), s)
}

func (c *Client) Goals(ctx context.Context) (domain.Goals, error) {
	return call[domain.Goals](ctx, c, get(ResourceGoals), nil)
}

func (c *Client) UpdateGoals(ctx context.Context, g domain.Goals) (domain.Goals, error) {
	return call[domain.Goals](ctx, c, put(ResourceGoals), g)
}

func (c *Client) StrengthsAndResources(ctx context.Context) (domain.StrengthsAndResources, error) {
	return call[domain.StrengthsAndResources](ctx, c, get(ResourceStrengths), nil)
}

func (c *Client) UpdateStrengthsAndResources(ctx context.Context, s domain.StrengthsAndResources) (domain.StrengthsAndResources, error) {
	return call[domain.StrengthsAndResources](ctx, c, put(ResourceStrengths), s)
}

func (c *Client) DiaryEntry(ctx context.Context, date string) (domain.DiaryEntry, error) {
	ep, err := getByDate(ResourceDiaryEntry, date)
	if err != nil {
		return domain.DiaryEntry{}, err
	}
	return call[domain.DiaryEntry](ctx, c, ep, nil)
}

func (c *Client) UpdateDiaryEntry(ctx context.Context, date string, e domain.DiaryEntry) (domain.DiaryEntry, error) {
	ep, err := putByDate(ResourceDiaryEntry, date)
	if err != nil {
		return domain.DiaryEntry{}, err
	}
	return call[domain.DiaryEntry](ctx, c, ep, e)
}

func (c *Client) WeeklyReview(ctx context.Context, date string) (domain.WeeklyReview, error) {
	ep, err := getByDate(ResourceWeeklyReview, date)
	if err != nil {
		return domain.WeeklyReview{}, err
	}
	return call[domain.WeeklyReview](ctx, c, ep, nil)
}

func (c *Client) UpdateWeeklyReview(ctx context.Context, date string, r domain.WeeklyReview) (domain.WeeklyReview, error) {
	ep, err := putByDate(ResourceWeeklyReview, date)
	if err != nil {
		return domain.WeeklyReview{}, err
	}
	return call[domain.WeeklyReview](ctx, c, ep, r)
}

func (c *Client) ProgressTracking(ctx context.Context, date string) (domain.ProgressTracking, error) {
	ep, err := getByDate(ResourceProgressTracking, date)
	if err != nil {
		return domain.ProgressTracking{}, err
	}
	return call[domain.ProgressTracking](ctx, c, ep, nil)
}

func (c *Client) UpdateProgressTracking(ctx context.Context, date string, p domain.ProgressTracking) (domain.ProgressTracking, error) {
	ep, err := putByDate(ResourceProgressTracking, date)
	if err != nil {
		return domain.ProgressTracking{}, err
	}
	return call[domain.ProgressTracking](ctx, c, ep, p)
}

func (c *Client) SudsCheckin(ctx context.Context, date string) (domain.SudsCheckin, error) {
	ep, err := getByDate(ResourceSudsCheckin, date)
	if err != nil {
		return domain.SudsCheckin{}, err
	}
	return call[domain.SudsCheckin](ctx, c, ep, nil)
}

func (c *Client) UpdateSudsCheckin(ctx context.Context, date string, s domain.SudsCheckin) (domain.SudsCheckin, error) {
	ep, err := putByDate(ResourceSudsCheckin, date)
	if err != nil {
		return domain.SudsCheckin{}, err
	}
	return call[domain.SudsCheckin](ctx, c, ep, s)
}

func (c *Client) SudsList(ctx context.Context) (domain.SudsList, error) {
	return call[domain.SudsList](ctx, c, get(ResourceSudsList), nil)
}

func (c *Client) SudsCalendar(ctx context.Context, month string) (domain.SudsCalendar, error) {
	if _, err := domain.ParseMonth(month); err != nil {
		return domain.SudsCalendar{}, err
	}
	ep := get(ResourceSudsCalendar)
	ep.key = url.PathEscape(month)
	return call[domain.SudsCalendar](ctx, c, ep, nil)
}

func (c *Client) CopingPlan(ctx context.Context) (domain.CopingPlan, error) {
	return call[domain.CopingPlan](ctx, c, get(ResourceCopingPlan), nil)
}

func (c *Client) UpdateCopingPlan(ctx context.Context, p domain.CopingPlan) (domain.CopingPlan, error) {
	return call[domain.CopingPlan](ctx, c, put(ResourceCopingPlan), p)
}
