package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(page, perPage int, role string) (*dto.AdminUserListResponse, error)
	CreateUser(req dto.AdminCreateUserRequest) (*dto.AdminUserDTO, error)
	CreateCandidate(req dto.AdminCreateCandidateRequest) (*dto.AdminUserDTO, error)
	DeleteUser(id uint) error

	ListCommissions() (*dto.AdminCommissionListResponse, error)
	CreateCommission(req dto.CommissionCreateRequest) (*dto.AdminCommissionDTO, error)
	AddCommissionMember(commissionID uint, req dto.CommissionMemberRequest) (*dto.CommissionMemberDTO, error)
	RemoveCommissionMember(commissionID, memberID uint) error
	ListCommissionMembers(commissionID uint) (*dto.CommissionMemberListResponse, error)

	AnalyticsOverview() (*dto.AnalyticsOverviewResponse, error)

	GetSettings() (*dto.SettingsDTO, error)
	UpdateSettings(req dto.SettingsUpdateRequest) (*dto.SettingsDTO, error)
}

type adminService struct {
	userRepo        repository.UserRepository
	profileRepo     repository.ProfileRepository
	candidatureRepo repository.CandidatureRepository
	commissionRepo  repository.CommissionRepository
	settingRepo     repository.SettingRepository
}

func NewAdminService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, candidatureRepo repository.CandidatureRepository, commissionRepo repository.CommissionRepository, settingRepo repository.SettingRepository) AdminService {
	return &adminService{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		candidatureRepo: candidatureRepo,
		commissionRepo:  commissionRepo,
		settingRepo:     settingRepo,
	}
}

func (s *adminService) ListUsers(page, perPage int, role string) (*dto.AdminUserListResponse, error) {
	users, total, err := s.userRepo.List(page, perPage, role)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	out := &dto.AdminUserListResponse{
		Data: make([]dto.AdminUserDTO, 0, len(users)),
		Meta: paginate(page, perPage, total),
	}
	for _, u := range users {
		out.Data = append(out.Data, adminUserToDTO(u))
	}
	return out, nil
}

func (s *adminService) CreateUser(req dto.AdminCreateUserRequest) (*dto.AdminUserDTO, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, NewValidationError("Utilisateur existant").Add("email", "Cette adresse email est déjà utilisée")
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := model.User{Name: req.Name, Email: req.Email, PasswordHash: hash, Role: req.Role}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	out := adminUserToDTO(user)
	return &out, nil
}

// CreateCandidate creates the account, its candidature and a pre-filled
// profile in one go, the admin-side onboarding path.
func (s *adminService) CreateCandidate(req dto.AdminCreateCandidateRequest) (*dto.AdminUserDTO, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, NewValidationError("Utilisateur existant").Add("email", "Cette adresse email est déjà utilisée")
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Name:         req.Prenom + " " + req.Nom,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleCandidat,
	}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	c := model.Candidature{UserID: user.ID, Status: model.StatusDraft, CurrentStep: 1}
	if err := s.candidatureRepo.Create(&c); err != nil {
		return nil, fmt.Errorf("error creating candidature: %w", err)
	}

	var profile model.Profile
	copier.Copy(&profile, &req)
	profile.CandidatureID = c.ID
	profile.NumeroSom = &req.NumeroSom
	if err := s.profileRepo.Save(&profile); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to prefill profile")
		return nil, fmt.Errorf("error creating profile: %w", err)
	}

	out := adminUserToDTO(user)
	return &out, nil
}

func (s *adminService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}

func (s *adminService) ListCommissions() (*dto.AdminCommissionListResponse, error) {
	commissions, err := s.commissionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error listing commissions: %w", err)
	}
	out := &dto.AdminCommissionListResponse{Data: make([]dto.AdminCommissionDTO, 0, len(commissions))}
	for _, c := range commissions {
		out.Data = append(out.Data, dto.AdminCommissionDTO{
			ID:           c.ID,
			Specialite:   c.Specialite,
			MembersCount: len(c.Members),
			CreatedAt:    ptr(c.CreatedAt),
		})
	}
	return out, nil
}

func (s *adminService) CreateCommission(req dto.CommissionCreateRequest) (*dto.AdminCommissionDTO, error) {
	c := model.Commission{Specialite: req.Specialite}
	if err := s.commissionRepo.Create(&c); err != nil {
		return nil, fmt.Errorf("error creating commission: %w", err)
	}
	return &dto.AdminCommissionDTO{ID: c.ID, Specialite: c.Specialite, CreatedAt: ptr(c.CreatedAt)}, nil
}

func (s *adminService) AddCommissionMember(commissionID uint, req dto.CommissionMemberRequest) (*dto.CommissionMemberDTO, error) {
	if _, err := s.commissionRepo.FindByID(commissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching commission: %w", err)
	}
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if user.Role != model.RoleCommission && user.Role != model.RolePresident {
		return nil, NewValidationError("Membre invalide").
			Add("user_id", "Seuls les comptes commission ou président peuvent rejoindre une commission")
	}

	m := model.CommissionUser{
		CommissionID: commissionID,
		UserID:       user.ID,
		IsPresident:  req.IsPresident || user.Role == model.RolePresident,
	}
	if err := s.commissionRepo.AddMember(&m); err != nil {
		return nil, fmt.Errorf("error adding member: %w", err)
	}
	return &dto.CommissionMemberDTO{
		ID:          m.ID,
		IsPresident: m.IsPresident,
		CreatedAt:   ptr(m.CreatedAt),
		User: dto.DossierCandidate{
			ID:    ptr(user.ID),
			Name:  ptr(user.Name),
			Email: ptr(user.Email),
			Role:  ptr(user.Role),
		},
	}, nil
}

func (s *adminService) RemoveCommissionMember(commissionID, memberID uint) error {
	return s.commissionRepo.RemoveMember(commissionID, memberID)
}

func (s *adminService) ListCommissionMembers(commissionID uint) (*dto.CommissionMemberListResponse, error) {
	members, err := s.commissionRepo.Members(commissionID)
	if err != nil {
		return nil, fmt.Errorf("error listing members: %w", err)
	}
	out := &dto.CommissionMemberListResponse{Data: make([]dto.CommissionMemberDTO, 0, len(members))}
	for _, m := range members {
		out.Data = append(out.Data, dto.CommissionMemberDTO{
			ID:          m.ID,
			IsPresident: m.IsPresident,
			CreatedAt:   ptr(m.CreatedAt),
			User: dto.DossierCandidate{
				ID:    ptr(m.User.ID),
				Name:  ptr(m.User.Name),
				Email: ptr(m.User.Email),
				Role:  ptr(m.User.Role),
			},
		})
	}
	return out, nil
}

// AnalyticsOverview assembles the admin dashboard: totals, a 30-day
// created/submitted series and the latest candidate accounts.
func (s *adminService) AnalyticsOverview() (*dto.AnalyticsOverviewResponse, error) {
	byStatus, err := s.candidatureRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("error counting dossiers: %w", err)
	}
	candidats, err := s.userRepo.CountByRole(model.RoleCandidat)
	if err != nil {
		return nil, fmt.Errorf("error counting candidates: %w", err)
	}

	since := time.Now().AddDate(0, 0, -30)
	created, err := s.candidatureRepo.CountCreatedSince(since)
	if err != nil {
		return nil, fmt.Errorf("error building series: %w", err)
	}
	submitted, err := s.candidatureRepo.CountSubmittedSince(since)
	if err != nil {
		return nil, fmt.Errorf("error building series: %w", err)
	}

	out := &dto.AnalyticsOverviewResponse{ByStatus: byStatus}
	for _, n := range byStatus {
		out.Totals.DossiersTotal += n
	}
	out.Totals.DossiersSubmitted = byStatus[model.StatusSubmitted] +
		byStatus[model.StatusApproved] + byStatus[model.StatusRejected] + byStatus[model.StatusBlocked]
	out.Totals.CandidatsTotal = candidats

	for i := 0; i <= 30; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		out.Series = append(out.Series, dto.AnalyticsPoint{
			Date:              day,
			DossiersCreated:   created[day],
			DossiersSubmitted: submitted[day],
		})
	}

	recent, err := s.userRepo.RecentByRole(model.RoleCandidat, 5)
	if err != nil {
		return nil, fmt.Errorf("error listing recent candidates: %w", err)
	}
	for _, u := range recent {
		out.RecentCandidates = append(out.RecentCandidates, dto.AnalyticsRecentCandidate{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: ptr(u.CreatedAt),
		})
	}
	return out, nil
}

func (s *adminService) GetSettings() (*dto.SettingsDTO, error) {
	setting, err := s.settingRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("error fetching settings: %w", err)
	}
	return settingToDTO(setting), nil
}

func (s *adminService) UpdateSettings(req dto.SettingsUpdateRequest) (*dto.SettingsDTO, error) {
	setting, err := s.settingRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("error fetching settings: %w", err)
	}
	if req.AppName != nil {
		setting.AppName = *req.AppName
	}
	if req.ContactEmail != nil {
		setting.ContactEmail = *req.ContactEmail
	}
	if req.CandidatureOpen != nil {
		setting.CandidatureOpen = *req.CandidatureOpen
	}
	if err := s.settingRepo.Save(setting); err != nil {
		return nil, fmt.Errorf("error saving settings: %w", err)
	}
	return settingToDTO(setting), nil
}

func settingToDTO(s *model.Setting) *dto.SettingsDTO {
	return &dto.SettingsDTO{
		AppName:         s.AppName,
		ContactEmail:    s.ContactEmail,
		CandidatureOpen: s.CandidatureOpen,
	}
}

func adminUserToDTO(u model.User) dto.AdminUserDTO {
	return dto.AdminUserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
