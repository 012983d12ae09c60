package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/stocklens/go-inventory-client/apiclient"
)

const logsPath = "/inventory/logs/"

// LogGroupBy selects the aggregation axis for a changes summary.
type LogGroupBy string

const (
	LogGroupByDay  LogGroupBy = "day"
	LogGroupByItem LogGroupBy = "item"
	LogGroupByUser LogGroupBy = "user"
)

// Logs exposes read operations over the audit log. The log is append-only
// server-side; no write operations exist.
type Logs struct {
	client *apiclient.Client
}

func NewLogs(client *apiclient.Client) *Logs {
	return &Logs{client: client}
}

// LogListParams narrows a log listing server-side.
type LogListParams struct {
	Item   int64
	Action LogAction
}

func (p LogListParams) values() url.Values {
	query := url.Values{}
	if p.Item != 0 {
		query.Set("item", strconv.FormatInt(p.Item, 10))
	}
	if p.Action != "" {
		query.Set("action", string(p.Action))
	}
	return query
}

func (l *Logs) List(ctx context.Context, params LogListParams) ([]LogEntry, error) {
	return apiclient.DoList[LogEntry](ctx, l.client, apiclient.Request{
		Path:  logsPath,
		Query: params.values(),
	})
}

func (l *Logs) Get(ctx context.Context, id int64) (*LogEntry, error) {
	var entry LogEntry
	path := fmt.Sprintf("%s%d/", logsPath, id)
	if err := l.client.Do(ctx, apiclient.Request{Path: path}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ForItem lists the audit trail of a single item.
func (l *Logs) ForItem(ctx context.Context, itemID int64) ([]LogEntry, error) {
	path := fmt.Sprintf("%s%d/item/", logsPath, itemID)
	return apiclient.DoList[LogEntry](ctx, l.client, apiclient.Request{Path: path})
}

// RecentChanges lists entries from the past days-long window. Zero leaves
// the window to the server default.
func (l *Logs) RecentChanges(ctx context.Context, days int) ([]LogEntry, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}
	return apiclient.DoList[LogEntry](ctx, l.client, apiclient.Request{
		Path:  logsPath + "recent_changes/",
		Query: query,
	})
}

// ChangesSummary fetches recent changes grouped by the given axis. The
// response shape depends on group_by, so the raw document is returned for
// the caller to decode.
func (l *Logs) ChangesSummary(ctx context.Context, groupBy LogGroupBy) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("group_by", string(groupBy))

	var raw json.RawMessage
	err := l.client.Do(ctx, apiclient.Request{
		Path:  logsPath + "recent_changes/",
		Query: query,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
