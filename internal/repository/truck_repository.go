package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/truck-garage-allocation/internal/model"
)

// TruckRepo provides data access to the trucks and layout_sections tables.
// The allocation engine only reads truck/layout state and writes the spot
// token plus audit entries; trucks themselves are created and maintained by
// surrounding CRUD flows that this service does not own.
type TruckRepo struct {
	db *sql.DB
}

// NewTruckRepo returns a TruckRepo bound to the provided database.
func NewTruckRepo(db *sql.DB) *TruckRepo { return &TruckRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span several repositories.
func (r *TruckRepo) DB() *sql.DB { return r.db }

const truckColumns = `id, plate_number, chassis_number, category, implement_type,
       job_name, spot_token, pos_x, pos_y, created_at, updated_at`

// scanTruck reads one trucks row from either *sql.Row or *sql.Rows.
func scanTruck(scan func(dest ...interface{}) error) (model.Truck, error) {
	var (
		t     model.Truck
		token sql.NullString
		posX  sql.NullFloat64
		posY  sql.NullFloat64
	)
	err := scan(&t.ID, &t.PlateNumber, &t.ChassisNumber, &t.Category, &t.ImplementType,
		&t.JobName, &token, &posX, &posY, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Truck{}, err
	}
	if token.Valid {
		s := token.String
		t.SpotToken = &s
	}
	if posX.Valid {
		v := posX.Float64
		t.PosX = &v
	}
	if posY.Valid {
		v := posY.Float64
		t.PosY = &v
	}
	return t, nil
}

// GetByID fetches a truck together with its layout sections.  Returns
// ErrTruckNotFound when no row exists.
func (r *TruckRepo) GetByID(ctx context.Context, id uint64) (model.Truck, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+truckColumns+` FROM trucks WHERE id = ? LIMIT 1`, id)
	t, err := scanTruck(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Truck{}, ErrTruckNotFound
	}
	if err != nil {
		return model.Truck{}, err
	}
	layouts, err := r.loadLayouts(ctx, []uint64{t.ID})
	if err != nil {
		return model.Truck{}, err
	}
	t.Layout = layouts[t.ID]
	return t, nil
}

// GetByIDTx fetches the tracked fields of a truck inside a transaction.  The
// layout is not loaded; the assignment path only needs the before values for
// the audit trail.  Returns ErrTruckNotFound when no row exists.
func (r *TruckRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Truck, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+truckColumns+` FROM trucks WHERE id = ? LIMIT 1`, id)
	t, err := scanTruck(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Truck{}, ErrTruckNotFound
	}
	return t, err
}

// ListBySpotTokens returns all trucks whose spot token is within the given
// set, with layouts attached.  This is the occupancy read used by the
// availability calculators; it is a plain snapshot read outside any
// transaction, advisory by design.  An empty token set yields an empty slice.
func (r *TruckRepo) ListBySpotTokens(ctx context.Context, tokens []string) ([]model.Truck, error) {
	if len(tokens) == 0 {
		return []model.Truck{}, nil
	}
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE spot_token IN (`
	args := make([]interface{}, 0, len(tokens))
	for i, tok := range tokens {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, tok)
	}
	query += ")"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trucks []model.Truck
	var ids []uint64
	for rows.Next() {
		t, scanErr := scanTruck(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		trucks = append(trucks, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	layouts, err := r.loadLayouts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range trucks {
		trucks[i].Layout = layouts[trucks[i].ID]
	}
	return trucks, nil
}

// OccupantsOfTokensTx returns the (id, spot_token) pairs of trucks currently
// occupying any of the given tokens.  Executed inside the assignment
// transaction so the conflict pre-clearing step sees committed occupancy.
func (r *TruckRepo) OccupantsOfTokensTx(ctx context.Context, tx *sql.Tx, tokens []string) ([]model.Truck, error) {
	if len(tokens) == 0 {
		return []model.Truck{}, nil
	}
	query := `SELECT id, spot_token FROM trucks WHERE spot_token IN (`
	args := make([]interface{}, 0, len(tokens))
	for i, tok := range tokens {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, tok)
	}
	query += ")"
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trucks []model.Truck
	for rows.Next() {
		var (
			t     model.Truck
			token sql.NullString
		)
		if err := rows.Scan(&t.ID, &token); err != nil {
			return nil, err
		}
		if token.Valid {
			s := token.String
			t.SpotToken = &s
		}
		trucks = append(trucks, t)
	}
	return trucks, rows.Err()
}

// ClearSpotTokenTx sets a truck's spot token to NULL.  Used by the conflict
// pre-clearing step to evict a prior occupant of a target spot.
func (r *TruckRepo) ClearSpotTokenTx(ctx context.Context, tx *sql.Tx, truckID uint64) error {
	_, err := tx.ExecContext(ctx, `UPDATE trucks SET spot_token = NULL WHERE id = ?`, truckID)
	return err
}

// UpdateSpotTokenTx writes a truck's spot token (NULL when token is nil).
func (r *TruckRepo) UpdateSpotTokenTx(ctx context.Context, tx *sql.Tx, truckID uint64, token *string) error {
	var v interface{}
	if token != nil && *token != "" {
		v = *token
	}
	_, err := tx.ExecContext(ctx, `UPDATE trucks SET spot_token = ? WHERE id = ?`, v, truckID)
	return err
}

// UpdateFieldsTx persists the tracked fields of a truck after a single
// update.  All tracked columns are written; callers pass the truck produced
// by the change builder so unchanged fields keep their values.
func (r *TruckRepo) UpdateFieldsTx(ctx context.Context, tx *sql.Tx, t model.Truck) error {
	var token interface{}
	if t.SpotToken != nil {
		token = *t.SpotToken
	}
	var posX, posY interface{}
	if t.PosX != nil {
		posX = *t.PosX
	}
	if t.PosY != nil {
		posY = *t.PosY
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE trucks
            SET plate_number = ?, chassis_number = ?, category = ?,
                implement_type = ?, spot_token = ?, pos_x = ?, pos_y = ?
          WHERE id = ?`,
		t.PlateNumber, t.ChassisNumber, t.Category, t.ImplementType, token, posX, posY, t.ID)
	return err
}

// loadLayouts fetches the layout sections of the given trucks and groups them
// into per-truck side layouts.  Trucks without sections get the zero layout
// (SideNone), which the length calculator treats as the configured minimum.
func (r *TruckRepo) loadLayouts(ctx context.Context, truckIDs []uint64) (map[uint64]model.SideLayout, error) {
	layouts := make(map[uint64]model.SideLayout, len(truckIDs))
	if len(truckIDs) == 0 {
		return layouts, nil
	}
	query := `SELECT id, truck_id, side, position, width_m FROM layout_sections WHERE truck_id IN (`
	args := make([]interface{}, 0, len(truckIDs))
	for i, id := range truckIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ") ORDER BY truck_id, side, position"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	left := make(map[uint64][]model.LayoutSection)
	right := make(map[uint64][]model.LayoutSection)
	for rows.Next() {
		var s model.LayoutSection
		if err := rows.Scan(&s.ID, &s.TruckID, &s.Side, &s.Position, &s.WidthM); err != nil {
			return nil, err
		}
		if s.Side == "RIGHT" {
			right[s.TruckID] = append(right[s.TruckID], s)
		} else {
			left[s.TruckID] = append(left[s.TruckID], s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range truckIDs {
		layouts[id] = model.NewSideLayout(left[id], right[id])
	}
	return layouts, nil
}
