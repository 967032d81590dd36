// ABOUTME: Audit journal entries and store methods for console write operations
// ABOUTME: Records which session changed which customer, account or movement

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents an auditable console action.
type AuditAction string

const (
	AuditCreateCustomer AuditAction = "create_customer"
	AuditUpdateCustomer AuditAction = "update_customer"
	AuditDeleteCustomer AuditAction = "delete_customer"
	AuditCreateAccount  AuditAction = "create_account"
	AuditUpdateAccount  AuditAction = "update_account"
	AuditDeleteAccount  AuditAction = "delete_account"
	AuditDeposit        AuditAction = "deposit"
	AuditWithdraw       AuditAction = "withdraw"
	AuditTransfer       AuditAction = "transfer"
)

// ValidAuditActions lists all valid audit actions.
var ValidAuditActions = []AuditAction{
	AuditCreateCustomer,
	AuditUpdateCustomer,
	AuditDeleteCustomer,
	AuditCreateAccount,
	AuditUpdateAccount,
	AuditDeleteAccount,
	AuditDeposit,
	AuditWithdraw,
	AuditTransfer,
}

// Valid reports whether a is a known action.
func (a AuditAction) Valid() bool {
	for _, v := range ValidAuditActions {
		if a == v {
			return true
		}
	}
	return false
}

// AuditEntry is a single journal entry.
type AuditEntry struct {
	ID         string         // UUID v4
	SessionID  string         // console session that issued the write
	Action     AuditAction    // what was done
	TargetType string         // "cliente", "cuenta", "movimiento"
	TargetID   string         // ID of the affected resource
	Timestamp  time.Time      // when it happened
	Detail     map[string]any // request parameters worth keeping
}

// AuditFilter selects journal entries.
type AuditFilter struct {
	Since      *time.Time
	Until      *time.Time
	SessionID  *string
	Action     *AuditAction
	TargetType *string
	TargetID   *string
	Limit      int // default 100, max 1000
}

// tsLayout is fixed-width so that text ordering matches time ordering.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// AppendAuditLog appends e to the journal, generating ID and Timestamp if
// not set.
func (s *SQLiteStore) AppendAuditLog(ctx context.Context, e *AuditEntry) error {
	if !e.Action.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, e.Action)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	var detailJSON *string
	if e.Detail != nil {
		data, err := json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("marshaling audit detail: %w", err)
		}
		str := string(data)
		detailJSON = &str
	}

	query := `
		INSERT INTO audit_log (audit_id, session_id, action, target_type, target_id, ts, detail_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.SessionID,
		e.Action,
		e.TargetType,
		e.TargetID,
		e.Timestamp.UTC().Format(tsLayout),
		detailJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	s.logger.Debug("appended audit log",
		"id", e.ID,
		"session", e.SessionID,
		"action", e.Action,
		"target", e.TargetType+"/"+e.TargetID,
	)
	return nil
}

// normalizeAuditLimit applies default (100) and cap (1000) to audit limit.
func normalizeAuditLimit(limit int) int {
	switch {
	case limit <= 0:
		return 100
	case limit > 1000:
		return 1000
	default:
		return limit
	}
}

type auditQueryArgs struct {
	sinceStr  *string
	untilStr  *string
	actionStr *string
}

func buildAuditQueryArgs(f AuditFilter) (auditQueryArgs, error) {
	var args auditQueryArgs
	if f.Since != nil && f.Until != nil && f.Until.Before(*f.Since) {
		return args, fmt.Errorf("%w: until before since", ErrInvalidFilter)
	}
	if f.Since != nil {
		s := f.Since.UTC().Format(tsLayout)
		args.sinceStr = &s
	}
	if f.Until != nil {
		s := f.Until.UTC().Format(tsLayout)
		args.untilStr = &s
	}
	if f.Action != nil {
		if !f.Action.Valid() {
			return args, fmt.Errorf("%w: unknown action %q", ErrInvalidFilter, *f.Action)
		}
		a := string(*f.Action)
		args.actionStr = &a
	}
	return args, nil
}

func scanAuditEntry(scanner interface{ Scan(dest ...any) error }) (AuditEntry, error) {
	var e AuditEntry
	var actionStr, tsStr string
	var detailJSON *string

	if err := scanner.Scan(
		&e.ID,
		&e.SessionID,
		&actionStr,
		&e.TargetType,
		&e.TargetID,
		&tsStr,
		&detailJSON,
	); err != nil {
		return e, fmt.Errorf("scanning audit entry: %w", err)
	}

	e.Action = AuditAction(actionStr)
	var err error
	e.Timestamp, err = time.Parse(tsLayout, tsStr)
	if err != nil {
		return e, fmt.Errorf("parsing timestamp: %w", err)
	}

	if detailJSON != nil {
		if err := json.Unmarshal([]byte(*detailJSON), &e.Detail); err != nil {
			return e, fmt.Errorf("unmarshaling detail: %w", err)
		}
	}
	return e, nil
}

const auditLogQuery = `
	SELECT audit_id, session_id, action, target_type, target_id, ts, detail_json
	FROM audit_log
	WHERE (? IS NULL OR ts >= ?)
	  AND (? IS NULL OR ts <= ?)
	  AND (? IS NULL OR session_id = ?)
	  AND (? IS NULL OR action = ?)
	  AND (? IS NULL OR target_type = ?)
	  AND (? IS NULL OR target_id = ?)
	ORDER BY ts DESC, rowid DESC
	LIMIT ?
`

// ListAuditLog returns entries matching f, newest first.
func (s *SQLiteStore) ListAuditLog(ctx context.Context, f AuditFilter) ([]AuditEntry, error) {
	limit := normalizeAuditLimit(f.Limit)
	args, err := buildAuditQueryArgs(f)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, auditLogQuery,
		args.sinceStr, args.sinceStr,
		args.untilStr, args.untilStr,
		f.SessionID, f.SessionID,
		args.actionStr, args.actionStr,
		f.TargetType, f.TargetType,
		f.TargetID, f.TargetID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}

	if entries == nil {
		entries = []AuditEntry{}
	}
	return entries, nil
}
