package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
	"github.com/sevasetu/volunteerhub/internal/repository"
)

// In-memory fakes implementing the repository interfaces. They reproduce the
// contracts the real gorm implementations provide, in particular the
// pending-gated update semantics and affected-row counts.

type fakeVolunteerRepo struct {
	volunteers map[uuid.UUID]*model.Volunteer
	err        error
}

func newFakeVolunteerRepo(volunteers ...*model.Volunteer) *fakeVolunteerRepo {
	repo := &fakeVolunteerRepo{volunteers: make(map[uuid.UUID]*model.Volunteer)}
	for _, v := range volunteers {
		repo.volunteers[v.ID] = v
	}
	return repo
}

func (r *fakeVolunteerRepo) Create(ctx context.Context, v *model.Volunteer) error {
	if r.err != nil {
		return r.err
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.volunteers[v.ID] = v
	return nil
}

func (r *fakeVolunteerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Volunteer, error) {
	if r.err != nil {
		return nil, r.err
	}
	v, ok := r.volunteers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fakeVolunteerRepo) FindByEmail(ctx context.Context, email string) (*model.Volunteer, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, v := range r.volunteers {
		if v.Email == email {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVolunteerRepo) FindAll(ctx context.Context, filter dto.VolunteerFilter) ([]*model.Volunteer, int64, error) {
	var out []*model.Volunteer
	for _, v := range r.volunteers {
		if !filter.Inactive && !v.IsActive {
			continue
		}
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVolunteerRepo) Update(ctx context.Context, v *model.Volunteer) error {
	r.volunteers[v.ID] = v
	return nil
}

func (r *fakeVolunteerRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if v, ok := r.volunteers[id]; ok {
		v.IsActive = active
	}
	return nil
}

type fakeParticipationRepo struct {
	rows map[uuid.UUID]*model.EventParticipation
	err  error
}

func newFakeParticipationRepo(rows ...*model.EventParticipation) *fakeParticipationRepo {
	repo := &fakeParticipationRepo{rows: make(map[uuid.UUID]*model.EventParticipation)}
	for _, p := range rows {
		repo.rows[p.ID] = p
	}
	return repo
}

func (r *fakeParticipationRepo) Create(ctx context.Context, p *model.EventParticipation) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.rows {
		if existing.EventID == p.EventID && existing.VolunteerID == p.VolunteerID {
			return repository.ErrAlreadyRegistered
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.rows[p.ID] = p
	return nil
}

func (r *fakeParticipationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EventParticipation, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeParticipationRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeParticipationRepo) FindPending(ctx context.Context, filter dto.PendingApprovalFilter) ([]*model.EventParticipation, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*model.EventParticipation
	for _, p := range r.rows {
		if p.ApprovalStatus != model.ApprovalPending {
			continue
		}
		if filter.EventID != "" && p.EventID.String() != filter.EventID {
			continue
		}
		if filter.Reviewable && p.HoursAttended == 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeParticipationRepo) FindApproved(ctx context.Context) ([]*model.EventParticipation, error) {
	var out []*model.EventParticipation
	for _, p := range r.rows {
		if p.ApprovalStatus == model.ApprovalApproved {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipationRepo) Approve(ctx context.Context, id uuid.UUID, d repository.ApprovalDecision) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	p, ok := r.rows[id]
	if !ok || p.ApprovalStatus != model.ApprovalPending {
		return 0, nil
	}
	hours := p.HoursAttended
	if d.ApprovedHours != nil {
		hours = *d.ApprovedHours
	}
	approverID := d.ApproverID
	decidedAt := d.DecidedAt
	p.ApprovalStatus = model.ApprovalApproved
	p.ApprovedHours = &hours
	p.ApprovedByID = &approverID
	p.ApprovedAt = &decidedAt
	p.ApprovalNotes = d.Notes
	return 1, nil
}

func (r *fakeParticipationRepo) Reject(ctx context.Context, id uuid.UUID, d repository.ApprovalDecision) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	p, ok := r.rows[id]
	if !ok || p.ApprovalStatus != model.ApprovalPending {
		return 0, nil
	}
	approverID := d.ApproverID
	decidedAt := d.DecidedAt
	p.ApprovalStatus = model.ApprovalRejected
	p.ApprovedHours = nil
	p.ApprovedByID = &approverID
	p.ApprovedAt = &decidedAt
	p.ApprovalNotes = d.Notes
	return 1, nil
}

func (r *fakeParticipationRepo) BulkApprove(ctx context.Context, ids []uuid.UUID, d repository.ApprovalDecision) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var count int64
	for _, id := range ids {
		p, ok := r.rows[id]
		if !ok || p.ApprovalStatus != model.ApprovalPending {
			continue
		}
		hours := p.HoursAttended
		approverID := d.ApproverID
		decidedAt := d.DecidedAt
		p.ApprovalStatus = model.ApprovalApproved
		p.ApprovedHours = &hours
		p.ApprovedByID = &approverID
		p.ApprovedAt = &decidedAt
		p.ApprovalNotes = d.Notes
		count++
	}
	return count, nil
}

func (r *fakeParticipationRepo) Reset(ctx context.Context, id uuid.UUID) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	p, ok := r.rows[id]
	if !ok || p.ApprovalStatus == model.ApprovalPending {
		return 0, nil
	}
	p.ApprovalStatus = model.ApprovalPending
	p.ApprovedHours = nil
	p.ApprovedByID = nil
	p.ApprovedAt = nil
	p.ApprovalNotes = nil
	return 1, nil
}

func (r *fakeParticipationRepo) UpdateAttendance(ctx context.Context, id uuid.UUID, status string, hoursAttended int) (int64, error) {
	p, ok := r.rows[id]
	if !ok {
		return 0, nil
	}
	p.Status = status
	p.HoursAttended = hoursAttended
	p.ApprovalStatus = model.ApprovalPending
	p.ApprovedHours = nil
	p.ApprovedByID = nil
	p.ApprovedAt = nil
	p.ApprovalNotes = nil
	return 1, nil
}

type fakeNotificationService struct {
	sent []*model.Notification
}

func (s *fakeNotificationService) Notify(ctx context.Context, n *model.Notification) error {
	s.sent = append(s.sent, n)
	return nil
}

func (s *fakeNotificationService) GetNotifications(ctx context.Context, volunteerID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	return s.sent, nil
}

func (s *fakeNotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error { return nil }

func (s *fakeNotificationService) MarkAllAsRead(ctx context.Context, volunteerID uuid.UUID) error {
	return nil
}

func (s *fakeNotificationService) UnreadCount(ctx context.Context, volunteerID uuid.UUID) (int64, error) {
	return int64(len(s.sent)), nil
}

type fakeReportRepo struct {
	activeVolunteers int64
	totalEvents      int64
	activeEvents     int64
	totalHours       int64
	monthHours       int64
	pendingReviews   int64
	trendRows        []repository.TrendRow
	endingSoon       []dto.EndingSoonEvent
	topEvents        []dto.EventImpact
	err              error
}

func (r *fakeReportRepo) CountActiveVolunteers(ctx context.Context) (int64, error) {
	return r.activeVolunteers, r.err
}

func (r *fakeReportRepo) CountEvents(ctx context.Context) (int64, error) {
	return r.totalEvents, r.err
}

func (r *fakeReportRepo) CountActiveEvents(ctx context.Context, now time.Time) (int64, error) {
	return r.activeEvents, r.err
}

func (r *fakeReportRepo) SumApprovedHours(ctx context.Context, since *time.Time) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if since != nil {
		return r.monthHours, nil
	}
	return r.totalHours, nil
}

func (r *fakeReportRepo) CountPendingReviews(ctx context.Context) (int64, error) {
	return r.pendingReviews, r.err
}

func (r *fakeReportRepo) EventsEndingSoon(ctx context.Context, now time.Time, horizon time.Duration) ([]dto.EndingSoonEvent, error) {
	return r.endingSoon, r.err
}

func (r *fakeReportRepo) MonthlyTrends(ctx context.Context, from time.Time) ([]repository.TrendRow, error) {
	return r.trendRows, r.err
}

func (r *fakeReportRepo) TopEventsByImpact(ctx context.Context, limit int) ([]dto.EventImpact, error) {
	return r.topEvents, r.err
}

type fakeEventRepo struct {
	events       map[uuid.UUID]*model.Event
	participants map[uuid.UUID]int64
}

func newFakeEventRepo(events ...*model.Event) *fakeEventRepo {
	repo := &fakeEventRepo{
		events:       make(map[uuid.UUID]*model.Event),
		participants: make(map[uuid.UUID]int64),
	}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (r *fakeEventRepo) Create(ctx context.Context, e *model.Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.events[e.ID] = e
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) FindAll(ctx context.Context, filter dto.EventFilter) ([]*model.Event, int64, error) {
	var out []*model.Event
	for _, e := range r.events {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) Update(ctx context.Context, e *model.Event) error {
	r.events[e.ID] = e
	return nil
}

func (r *fakeEventRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if e, ok := r.events[id]; ok {
		e.IsActive = false
	}
	return nil
}

func (r *fakeEventRepo) CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return r.participants[eventID], nil
}

type fakeCategoryRepo struct {
	categories  map[uuid.UUID]*model.EventCategory
	eventsUsing map[uuid.UUID]int64
}

func newFakeCategoryRepo(categories ...*model.EventCategory) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{
		categories:  make(map[uuid.UUID]*model.EventCategory),
		eventsUsing: make(map[uuid.UUID]int64),
	}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *model.EventCategory) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EventCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) FindAll(ctx context.Context) ([]*model.EventCategory, error) {
	var out []*model.EventCategory
	for _, c := range r.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *model.EventCategory) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) CountEventsUsing(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.eventsUsing[id], nil
}

type fakeRoleRepo struct {
	definitions map[string]*model.RoleDefinition
	assignments []*model.UserRole
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		definitions: map[string]*model.RoleDefinition{
			model.RoleVolunteer: {ID: 1, Name: model.RoleVolunteer, Level: model.LevelVolunteer},
			model.RoleHead:      {ID: 2, Name: model.RoleHead, Level: model.LevelHead},
			model.RoleAdmin:     {ID: 3, Name: model.RoleAdmin, Level: model.LevelAdmin},
		},
	}
}

func (r *fakeRoleRepo) FindDefinitionByName(ctx context.Context, name string) (*model.RoleDefinition, error) {
	def, ok := r.definitions[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return def, nil
}

func (r *fakeRoleRepo) ListDefinitions(ctx context.Context) ([]*model.RoleDefinition, error) {
	var out []*model.RoleDefinition
	for _, def := range r.definitions {
		out = append(out, def)
	}
	return out, nil
}

func (r *fakeRoleRepo) Assign(ctx context.Context, ur *model.UserRole) error {
	if ur.ID == uuid.Nil {
		ur.ID = uuid.New()
	}
	r.assignments = append(r.assignments, ur)
	return nil
}

func (r *fakeRoleRepo) Revoke(ctx context.Context, volunteerID uuid.UUID, roleID uint) error {
	for _, a := range r.assignments {
		if a.VolunteerID == volunteerID && a.RoleID == roleID {
			a.IsActive = false
		}
	}
	return nil
}

func (r *fakeRoleRepo) FindActiveAssignments(ctx context.Context, volunteerID uuid.UUID) ([]*model.UserRole, error) {
	var out []*model.UserRole
	for _, a := range r.assignments {
		if a.VolunteerID == volunteerID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRoleRepo) HighestLevel(ctx context.Context, volunteerID uuid.UUID, now time.Time) (int, error) {
	level := 0
	for _, a := range r.assignments {
		if a.VolunteerID != volunteerID || !a.IsActive || a.ExpiredAt(now) {
			continue
		}
		for _, def := range r.definitions {
			if def.ID == a.RoleID && def.Level > level {
				level = def.Level
			}
		}
	}
	return level, nil
}

var errStore = errors.New("store is down")
