package doctor

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"amedick/config"
	"amedick/database"
	doctorRepo "amedick/database/repository/doctor"
	"amedick/models"
	"amedick/services/availability"
	"amedick/services/storage"
	"amedick/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type memDoctors struct {
	doctorRepo.DoctorRepository
	mu   sync.Mutex
	byID map[string]*models.Doctor
}

func newMemDoctors() *memDoctors {
	return &memDoctors{byID: map[string]*models.Doctor{}}
}

func (m *memDoctors) Create(_ context.Context, d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.byID {
		if other.Email == d.Email {
			return database.ErrDuplicate
		}
	}
	cp := *d
	m.byID[d.ID] = &cp
	return nil
}

func (m *memDoctors) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.Availability = append([]models.DayAvailability(nil), d.Availability...)
	return &cp, nil
}

func (m *memDoctors) GetByIDWithProjection(ctx context.Context, id string, _ bson.M) (*models.Doctor, error) {
	return m.GetByID(ctx, id)
}

func (m *memDoctors) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	m.mu.Lock()
	var id string
	for _, d := range m.byID {
		if d.Email == email {
			id = d.ID
		}
	}
	m.mu.Unlock()
	if id == "" {
		return nil, nil
	}
	return m.GetByID(ctx, id)
}

func (m *memDoctors) ListApproved(_ context.Context) ([]models.DoctorSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.DoctorSummary{}
	for _, d := range m.byID {
		if d.VerificationStatus == models.VerificationApproved {
			out = append(out, models.DoctorSummary{ID: d.ID, Name: d.Name, Specialization: d.Specialization})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memDoctors) UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Doctor, error) {
	m.mu.Lock()
	d, ok := m.byID[id]
	if ok {
		for k, v := range fields {
			switch k {
			case "name":
				d.Name = v.(string)
			case "phone":
				d.Phone = v.(string)
			case "specialization":
				d.Specialization = v.(string)
			case "experience":
				d.Experience = v.(int)
			case "clinic":
				d.Clinic = v.(*models.Clinic)
			case "profilePhoto":
				d.ProfilePhoto = v.(string)
			}
		}
	}
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return m.GetByID(ctx, id)
}

func (m *memDoctors) UpsertDay(_ context.Context, id string, day int, slots []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	for i := range d.Availability {
		if d.Availability[i].Day == day {
			d.Availability[i].Slots = slots
			return nil
		}
	}
	d.Availability = append(d.Availability, models.DayAvailability{Day: day, Slots: slots})
	return nil
}

func (m *memDoctors) RemoveDay(_ context.Context, id string, day int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return false, database.ErrNotFound
	}
	for i := range d.Availability {
		if d.Availability[i].Day == day {
			d.Availability = append(d.Availability[:i], d.Availability[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memDoctors) RemoveSlots(_ context.Context, id string, day int, slots []string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return false, database.ErrNotFound
	}
	drop := map[string]bool{}
	for _, s := range slots {
		drop[s] = true
	}
	for i := range d.Availability {
		if d.Availability[i].Day != day {
			continue
		}
		kept := []string{}
		for _, s := range d.Availability[i].Slots {
			if !drop[s] {
				kept = append(kept, s)
			}
		}
		d.Availability[i].Slots = kept
		return true, nil
	}
	return false, nil
}

type fakeStorage struct {
	uploads []storage.File
	err     error
}

func (f *fakeStorage) Upload(_ context.Context, file storage.File, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, file)
	return "https://cdn.example.com/" + folder + "/" + file.Field, nil
}

func (f *fakeStorage) Delete(context.Context, string) error { return nil }

type nopMailer struct{ sent int }

func (m *nopMailer) Send(context.Context, models.MailPayload) error { m.sent++; return nil }
func (m *nopMailer) SendAt(context.Context, models.MailPayload, time.Time) error {
	m.sent++
	return nil
}

func newService() (*DefaultDoctorService, *memDoctors, *fakeStorage, *nopMailer) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.BcryptCost = 4
	repo := newMemDoctors()
	store := &fakeStorage{}
	mailer := &nopMailer{}
	return &DefaultDoctorService{Repo: repo, Storage: store, Mailer: mailer, TokenTTL: time.Hour}, repo, store, mailer
}

func validForm() models.DoctorRegistration {
	return models.DoctorRegistration{
		FullName:           "  Meera Rao ",
		Email:              "Meera@Example.com ",
		Password:           "s3cret!",
		Specialization:     "Cardiology",
		RegistrationNumber: "MCI-123",
		RegistrationYear:   "2012",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo, store, mailer := newService()
	ctx := context.Background()

	files := []storage.File{
		{Field: "govtIdProof", Filename: "id.pdf", Content: strings.NewReader("pdf")},
		{Field: "profilePhoto", Filename: "me.jpg", Content: strings.NewReader("jpg")},
	}
	doc, err := svc.Register(ctx, validForm(), files)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if doc.Email != "meera@example.com" || doc.Name != "Meera Rao" || doc.RegistrationYear != 2012 {
		t.Errorf("registered doctor = %+v", doc)
	}
	if doc.VerificationStatus != models.VerificationPending || doc.PasswordHash != "" {
		t.Errorf("status %q, hash leaked %v", doc.VerificationStatus, doc.PasswordHash != "")
	}
	if doc.Documents.GovtIDProof == "" || doc.ProfilePhoto == "" || len(store.uploads) != 2 {
		t.Errorf("uploads not recorded: %+v", doc)
	}
	if mailer.sent != 1 {
		t.Errorf("sent %d mails, want 1", mailer.sent)
	}

	if _, err := svc.Register(ctx, validForm(), nil); !errors.Is(err, ErrDoctorExists) {
		t.Errorf("duplicate err = %v, want ErrDoctorExists", err)
	}

	if _, _, err := svc.Login(ctx, "meera@example.com", "s3cret!"); !errors.Is(err, ErrNotVerified) {
		t.Errorf("pending login err = %v, want ErrNotVerified", err)
	}

	repo.byID[doc.ID].VerificationStatus = models.VerificationApproved
	if _, _, err := svc.Login(ctx, "meera@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("unknown err = %v", err)
	}
	token, got, err := svc.Login(ctx, " MEERA@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	p, _, err := utils.ParsePrincipal(token)
	if err != nil || p.ID != doc.ID || p.Role != models.RoleDoctor {
		t.Errorf("token principal = %+v, %v", p, err)
	}
	if got.PasswordHash != "" {
		t.Error("login leaked password hash")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, store, _ := newService()
	ctx := context.Background()

	form := validForm()
	form.RegistrationNumber = ""
	if _, err := svc.Register(ctx, form, nil); !errors.Is(err, ErrMissingFields) {
		t.Errorf("err = %v, want ErrMissingFields", err)
	}

	store.err = errors.New("cloudinary down")
	files := []storage.File{{Field: "govtIdProof", Filename: "id.pdf", Content: strings.NewReader("x")}}
	if _, err := svc.Register(ctx, validForm(), files); !errors.Is(err, ErrUploadFailed) {
		t.Errorf("err = %v, want ErrUploadFailed", err)
	}
}

func seedDoctor(repo *memDoctors) string {
	repo.byID["doc-1"] = &models.Doctor{ID: "doc-1", Name: "Rao", VerificationStatus: models.VerificationApproved}
	return "doc-1"
}

func intp(i int) *int { return &i }

func TestAvailabilityAuthoring(t *testing.T) {
	svc, repo, _, _ := newService()
	ctx := context.Background()
	id := seedDoctor(repo)

	days, err := svc.UpsertAvailability(ctx, id, models.UpsertAvailabilityRequest{
		Day:   intp(1),
		Slots: []string{"10:00", "09:00", "09:00"},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if want := []models.DayAvailability{{Day: 1, Slots: []string{"09:00", "10:00"}}}; !reflect.DeepEqual(days, want) {
		t.Errorf("after upsert = %+v, want %+v", days, want)
	}

	// A second upsert for the same day replaces instead of appending a new entry.
	days, err = svc.UpsertAvailability(ctx, id, models.UpsertAvailabilityRequest{
		Day:    intp(1),
		Ranges: "14:00-15:00, bogus, 16:00-15:00",
	})
	if err != nil {
		t.Fatalf("Upsert ranges: %v", err)
	}
	if want := []models.DayAvailability{{Day: 1, Slots: []string{"14:00", "14:30"}}}; !reflect.DeepEqual(days, want) {
		t.Errorf("after replace = %+v, want %+v", days, want)
	}

	if _, err := svc.UpsertAvailability(ctx, id, models.UpsertAvailabilityRequest{Day: intp(7), Slots: []string{}}); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("day 7 err = %v", err)
	}
	if _, err := svc.UpsertAvailability(ctx, id, models.UpsertAvailabilityRequest{Day: intp(2), Slots: []string{"9:00"}}); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("bad slot err = %v", err)
	}
	if _, err := svc.UpsertAvailability(ctx, id, models.UpsertAvailabilityRequest{Slots: []string{"09:00"}}); !errors.Is(err, ErrSlotsRequired) {
		t.Errorf("missing day err = %v", err)
	}
	if _, err := svc.UpsertAvailability(ctx, "ghost", models.UpsertAvailabilityRequest{Day: intp(1), Slots: []string{}}); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("unknown doctor err = %v", err)
	}

	days, err = svc.DeleteAvailability(ctx, id, 1, "14:00")
	if err != nil {
		t.Fatalf("delete slot: %v", err)
	}
	if want := []string{"14:30"}; !reflect.DeepEqual(days[0].Slots, want) {
		t.Errorf("after slot delete = %v", days[0].Slots)
	}
	if _, err := svc.DeleteAvailability(ctx, id, 3, ""); !errors.Is(err, ErrDayNotFound) {
		t.Errorf("missing day err = %v", err)
	}
	days, err = svc.DeleteAvailability(ctx, id, 1, "")
	if err != nil || len(days) != 0 {
		t.Errorf("after day delete = %+v, %v", days, err)
	}
}

func TestDeleteAvailabilityRange(t *testing.T) {
	svc, repo, _, _ := newService()
	ctx := context.Background()
	id := seedDoctor(repo)

	if _, err := svc.UpsertAvailability(ctx, id, models.UpsertAvailabilityRequest{Day: intp(2), Ranges: "09:00-12:00"}); err != nil {
		t.Fatal(err)
	}
	days, err := svc.DeleteAvailabilityRange(ctx, id, 2, "10:00", "11:00")
	if err != nil {
		t.Fatalf("DeleteAvailabilityRange: %v", err)
	}
	if want := []string{"09:00", "09:30", "11:00", "11:30"}; !reflect.DeepEqual(days[0].Slots, want) {
		t.Errorf("slots = %v, want %v", days[0].Slots, want)
	}
	if _, err := svc.DeleteAvailabilityRange(ctx, id, 2, "11:00", "10:00"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range err = %v", err)
	}

	ranges, err := svc.GetAvailabilityRanges(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	want := []DayRanges{{Day: 2, Ranges: []availability.Range{{Start: "09:00", End: "10:00"}, {Start: "11:00", End: "12:00"}}}}
	if !reflect.DeepEqual(ranges, want) {
		t.Errorf("ranges = %+v, want %+v", ranges, want)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, repo, _, _ := newService()
	ctx := context.Background()
	id := seedDoctor(repo)

	name, exp := "Dr Meera Rao", 12
	photo := &storage.File{Field: "profilePhoto", Filename: "p.png", Content: strings.NewReader("png")}
	doc, err := svc.UpdateProfile(ctx, id, models.DoctorProfileUpdate{
		Name:       &name,
		Experience: &exp,
		Clinic:     &models.Clinic{Name: "Heart Care", City: "Pune"},
	}, photo)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if doc.Name != name || doc.Experience != 12 || doc.Clinic == nil || doc.Clinic.City != "Pune" || doc.ProfilePhoto == "" {
		t.Errorf("updated = %+v", doc)
	}

	if _, err := svc.UpdateProfile(ctx, "ghost", models.DoctorProfileUpdate{Name: &name}, nil); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("unknown doctor err = %v", err)
	}
}
