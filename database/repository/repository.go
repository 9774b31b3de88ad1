package repository

import (
	"context"

	adminRepo "amedick/database/repository/admin"
	appointmentRepo "amedick/database/repository/appointment"
	doctorRepo "amedick/database/repository/doctor"
	userRepo "amedick/database/repository/user"
)

type (
	UserRepository        = userRepo.UserRepository
	DoctorRepository      = doctorRepo.DoctorRepository
	AdminRepository       = adminRepo.AdminRepository
	AppointmentRepository = appointmentRepo.AppointmentRepository
)

// Repositories bundles every Mongo-backed store the server uses.
type Repositories struct {
	Users        UserRepository
	Doctors      DoctorRepository
	Admins       AdminRepository
	Appointments AppointmentRepository
}

// NewMongoRepositories constructs all repositories against database.MongoClient.
// It fails when the appointment slot index cannot be built.
func NewMongoRepositories(ctx context.Context) (*Repositories, error) {
	appointments, err := appointmentRepo.NewMongoAppointmentRepo(ctx)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Users:        userRepo.NewMongoUserRepo(),
		Doctors:      doctorRepo.NewMongoDoctorRepo(),
		Admins:       adminRepo.NewMongoAdminRepo(),
		Appointments: appointments,
	}, nil
}

// EnsureIndexes (re)creates the indexes of every collection.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for _, ensure := range []func(context.Context) error{
		r.Users.EnsureIndexes,
		r.Doctors.EnsureIndexes,
		r.Admins.EnsureIndexes,
		r.Appointments.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}
