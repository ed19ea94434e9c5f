package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	"github.com/tsinsights/timesheet_insights_app/internal/core/ports/upstream"
)

const workDateLayout = "2006-01-02"

// CredentialProvider supplies a credential with a valid access token,
// refreshing it first when needed.
type CredentialProvider interface {
	UsableCredential(ctx context.Context, userID string) (*domain.Credential, error)
}

// Client fetches time logs from the Zoho People timetracker API. One outbound
// request per interval, no retries; the HTTP client carries an explicit
// timeout so a hung upstream cannot stall a sync indefinitely.
type Client struct {
	apiBaseURL string
	httpClient *http.Client
	creds      CredentialProvider
}

// NewClient creates a Zoho timetracker client.
func NewClient(apiBaseURL string, timeout time.Duration, creds CredentialProvider) *Client {
	return &Client{
		apiBaseURL: apiBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
	}
}

var _ upstream.RecordSource = (*Client)(nil)

// Name implements upstream.RecordSource.
func (c *Client) Name() string {
	return upstream.SourceZoho
}

// timeLogEnvelope mirrors the wire shape of the gettimelogs response. Hour
// fields arrive as JSON numbers or numeric strings depending on the tenant,
// so they are decoded through json.Number.
type timeLogEnvelope struct {
	Response struct {
		Result []timeLog `json:"result"`
	} `json:"response"`
}

type timeLog struct {
	TimelogID        string      `json:"timelogId"`
	WorkDate         string      `json:"workDate"`
	ProjectName      string      `json:"projectName"`
	EmployeeName     string      `json:"employeeName"`
	JobName          string      `json:"jobName"`
	ClientName       string      `json:"clientName"`
	BillableHours    json.Number `json:"billableHours"`
	NonBillableHours json.Number `json:"nonBillableHours"`
	TotalHours       json.Number `json:"totalHours"`
	ApprovalStatus   string      `json:"approvalStatus"`
	Description      string      `json:"description"`
}

// FetchRecords implements upstream.RecordSource.
func (c *Client) FetchRecords(ctx context.Context, userID string, rng domain.DateRange) ([]domain.RawTimesheetRecord, error) {
	cred, err := c.creds.UsableCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(c.apiBaseURL + "/timetracker/gettimelogs")
	if err != nil {
		return nil, fmt.Errorf("invalid zoho api base url: %w", err)
	}
	q := endpoint.Query()
	q.Set("user", "all")
	q.Set("fromDate", rng.Start.Format(workDateLayout))
	q.Set("toDate", rng.End.Format(workDateLayout))
	q.Set("dateFormat", "yyyy-MM-dd")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build timelog request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+*cred.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: upstream returned %s", apperrors.ErrUpstreamAuthExpired, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: upstream returned %s", apperrors.ErrUpstreamUnavailable, resp.Status)
	}

	var envelope timeLogEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode timelog response: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	records := make([]domain.RawTimesheetRecord, 0, len(envelope.Response.Result))
	for _, log := range envelope.Response.Result {
		record, err := toRawRecord(log)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed timelog %s: %v", apperrors.ErrUpstreamUnavailable, log.TimelogID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func toRawRecord(log timeLog) (domain.RawTimesheetRecord, error) {
	workDate, err := time.Parse(workDateLayout, log.WorkDate)
	if err != nil {
		return domain.RawTimesheetRecord{}, fmt.Errorf("invalid work date %q: %w", log.WorkDate, err)
	}
	billable, err := numberToHours(log.BillableHours)
	if err != nil {
		return domain.RawTimesheetRecord{}, err
	}
	nonBillable, err := numberToHours(log.NonBillableHours)
	if err != nil {
		return domain.RawTimesheetRecord{}, err
	}
	total, err := numberToHours(log.TotalHours)
	if err != nil {
		return domain.RawTimesheetRecord{}, err
	}
	if total == 0 {
		total = billable + nonBillable
	}

	return domain.RawTimesheetRecord{
		RecordID:         log.TimelogID,
		WorkDate:         workDate,
		ProjectName:      log.ProjectName,
		EmployeeName:     log.EmployeeName,
		JobName:          log.JobName,
		ClientName:       log.ClientName,
		BillableHours:    billable,
		NonBillableHours: nonBillable,
		TotalHours:       total,
		ApprovalStatus:   log.ApprovalStatus,
		Notes:            log.Description,
	}, nil
}

func numberToHours(n json.Number) (float64, error) {
	if n.String() == "" {
		return 0, nil
	}
	v, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("invalid hour value %q: %w", n.String(), err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative hour value %q", n.String())
	}
	return v, nil
}
