package service

import (
	"context"
	"time"

	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/mailqueue"
	"github.com/symposio/conference-api/internal/repository"
)

type fakeConferenceRepo struct {
	conferences map[string]domain.Conference
}

func newFakeConferenceRepo(conferences ...domain.Conference) *fakeConferenceRepo {
	repo := &fakeConferenceRepo{conferences: make(map[string]domain.Conference)}
	for _, c := range conferences {
		repo.conferences[c.Slug] = c
	}
	return repo
}

func (f *fakeConferenceRepo) Create(_ context.Context, conference domain.Conference) (domain.Conference, error) {
	f.conferences[conference.Slug] = conference
	return conference, nil
}

func (f *fakeConferenceRepo) Update(_ context.Context, conference domain.Conference) (domain.Conference, error) {
	f.conferences[conference.Slug] = conference
	return conference, nil
}

func (f *fakeConferenceRepo) FindByID(_ context.Context, id uint) (domain.Conference, error) {
	for _, c := range f.conferences {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Conference{}, repository.ErrConferenceNotFound
}

func (f *fakeConferenceRepo) FindBySlug(_ context.Context, slug string) (domain.Conference, error) {
	c, ok := f.conferences[slug]
	if !ok {
		return domain.Conference{}, repository.ErrConferenceNotFound
	}
	return c, nil
}

func (f *fakeConferenceRepo) FindAll(_ context.Context) ([]domain.Conference, error) {
	all := make([]domain.Conference, 0, len(f.conferences))
	for _, c := range f.conferences {
		all = append(all, c)
	}
	return all, nil
}

type fakeSessionRepo struct {
	sessions map[uint]domain.Session
}

func newFakeSessionRepo(sessions ...domain.Session) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: make(map[uint]domain.Session)}
	for _, s := range sessions {
		repo.sessions[s.ID] = s
	}
	return repo
}

func (f *fakeSessionRepo) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, session domain.Session) (domain.Session, error) {
	if _, ok := f.sessions[session.ID]; !ok {
		return domain.Session{}, repository.ErrSessionNotFound
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uint) (domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return domain.Session{}, repository.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.Session, error) {
	found := make([]domain.Session, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.sessions[id]; ok {
			found = append(found, s)
		}
	}
	return found, nil
}

func (f *fakeSessionRepo) FindByConferenceID(_ context.Context, conferenceID uint) ([]domain.Session, error) {
	found := make([]domain.Session, 0)
	for _, s := range f.sessions {
		if s.ConferenceID == conferenceID {
			found = append(found, s)
		}
	}
	return found, nil
}

type fakeRegistrationRepo struct {
	registrations map[uint]domain.Registration
	counts        map[uint]int
	nextID        uint

	createErr  error
	confirmErr error
}

func newFakeRegistrationRepo(registrations ...domain.Registration) *fakeRegistrationRepo {
	repo := &fakeRegistrationRepo{
		registrations: make(map[uint]domain.Registration),
		counts:        make(map[uint]int),
		nextID:        1,
	}
	for _, r := range registrations {
		repo.registrations[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (f *fakeRegistrationRepo) CreateBatch(_ context.Context, registrations []domain.Registration) ([]domain.Registration, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	created := make([]domain.Registration, len(registrations))
	for i, r := range registrations {
		r.ID = f.nextID
		f.nextID++
		f.registrations[r.ID] = r
		created[i] = r
	}
	return created, nil
}

func (f *fakeRegistrationRepo) CountBySession(_ context.Context, _ uint) (map[uint]int, error) {
	return f.counts, nil
}

func (f *fakeRegistrationRepo) FindByID(_ context.Context, id uint) (domain.Registration, error) {
	r, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	return r, nil
}

func (f *fakeRegistrationRepo) FindByQRCode(_ context.Context, qrCode string) (domain.Registration, error) {
	for _, r := range f.registrations {
		if r.QRCode == qrCode {
			return r, nil
		}
	}
	return domain.Registration{}, repository.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) ConfirmByToken(_ context.Context, token string, now time.Time) ([]domain.Registration, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}

	var confirmed []domain.Registration
	for id, r := range f.registrations {
		if r.ConfirmationToken != token {
			continue
		}
		if r.TokenExpiresAt != nil && now.After(*r.TokenExpiresAt) {
			return nil, repository.ErrTokenExpired
		}
		if r.Status == domain.RegistrationStatusPending {
			r.Status = domain.RegistrationStatusConfirmed
			f.registrations[id] = r
		}
		confirmed = append(confirmed, r)
	}
	if len(confirmed) == 0 {
		return nil, repository.ErrRegistrationNotFound
	}
	return confirmed, nil
}

func (f *fakeRegistrationRepo) FindBySessionID(_ context.Context, sessionID uint) ([]domain.Registration, error) {
	var found []domain.Registration
	for _, r := range f.registrations {
		if r.SessionID == sessionID {
			found = append(found, r)
		}
	}
	return found, nil
}

func (f *fakeRegistrationRepo) FindByConferenceID(_ context.Context, conferenceID uint) ([]domain.Registration, error) {
	var found []domain.Registration
	for _, r := range f.registrations {
		if r.ConferenceID == conferenceID {
			found = append(found, r)
		}
	}
	return found, nil
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.registrations[id]; !ok {
		return repository.ErrRegistrationNotFound
	}
	delete(f.registrations, id)
	return nil
}

type fakeCheckInRepo struct {
	checkIns map[uint]map[uint]domain.CheckIn // registrationID -> sessionID
	nextID   uint
}

func newFakeCheckInRepo() *fakeCheckInRepo {
	return &fakeCheckInRepo{
		checkIns: make(map[uint]map[uint]domain.CheckIn),
		nextID:   1,
	}
}

func (f *fakeCheckInRepo) Create(_ context.Context, checkIn domain.CheckIn) (domain.CheckIn, error) {
	if _, ok := f.checkIns[checkIn.RegistrationID][checkIn.SessionID]; ok {
		return domain.CheckIn{}, repository.ErrAlreadyCheckedIn
	}

	checkIn.ID = f.nextID
	f.nextID++
	if f.checkIns[checkIn.RegistrationID] == nil {
		f.checkIns[checkIn.RegistrationID] = make(map[uint]domain.CheckIn)
	}
	f.checkIns[checkIn.RegistrationID][checkIn.SessionID] = checkIn
	return checkIn, nil
}

func (f *fakeCheckInRepo) ExistsFor(_ context.Context, registrationID, sessionID uint) (bool, error) {
	_, ok := f.checkIns[registrationID][sessionID]
	return ok, nil
}

func (f *fakeCheckInRepo) FindBySessionID(_ context.Context, sessionID uint) ([]domain.CheckIn, error) {
	var found []domain.CheckIn
	for _, bySession := range f.checkIns {
		if c, ok := bySession[sessionID]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

type fakeMailQueue struct {
	jobs []mailqueue.Job
	err  error
}

func (f *fakeMailQueue) Enqueue(_ context.Context, job mailqueue.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}
