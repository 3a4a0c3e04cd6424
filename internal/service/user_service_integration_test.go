package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/artstack/creative-showcase/internal/models"
	"github.com/artstack/creative-showcase/internal/repository"
	"github.com/artstack/creative-showcase/internal/service"
	"github.com/artstack/creative-showcase/internal/testutil"
	"github.com/artstack/creative-showcase/internal/utils"
	"github.com/artstack/creative-showcase/pkg/logger"
	"github.com/stretchr/testify/suite"
)

type UserServiceIntegrationTestSuite struct {
	suite.Suite
	testDB         *testutil.TestDatabase
	blobStore      *testutil.FakeBlobStore
	userRepo       *repository.UserRepository
	artworkRepo    *repository.ArtworkRepository
	userService    *service.UserService
	artworkService *service.ArtworkService

	alice *models.User
	bob   *models.User
}

func (s *UserServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())
}

func (s *UserServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *UserServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	s.blobStore = testutil.NewFakeBlobStore()
	s.userRepo = repository.NewUserRepository(s.testDB.DB)
	s.artworkRepo = repository.NewArtworkRepository(s.testDB.DB)
	s.userService = service.NewUserService(s.userRepo, s.artworkRepo, s.blobStore)
	s.artworkService = service.NewArtworkService(s.artworkRepo, s.userRepo, s.blobStore)

	s.alice, _ = testutil.CreateTestUser("alice", "alice@example.com", "secret1")
	s.bob, _ = testutil.CreateTestUser("bob", "bob@example.com", "secret2")
	s.Require().NoError(s.testDB.DB.Create(s.alice).Error)
	s.Require().NoError(s.testDB.DB.Create(s.bob).Error)
}

func userUpload() *service.ImageUpload {
	return &service.ImageUpload{
		Reader:      strings.NewReader("fake image bytes"),
		Size:        16,
		ContentType: "image/jpeg",
	}
}

func (s *UserServiceIntegrationTestSuite) TestGetPublicProfile() {
	ctx := context.Background()

	public, err := s.artworkService.Create(ctx, s.alice.ID, uploadInput("Shown", "digital"))
	s.Require().NoError(err)

	private := testutil.CreateTestArtwork(s.alice.ID, "Hidden", models.CategoryDigital)
	private.IsPublic = false
	s.Require().NoError(s.artworkRepo.CreateArtwork(private))

	// Two views and one like on the public piece
	_, err = s.artworkService.GetByID(public.ID)
	s.Require().NoError(err)
	_, err = s.artworkService.GetByID(public.ID)
	s.Require().NoError(err)
	_, _, err = s.artworkService.ToggleLike(public.ID, s.bob.ID)
	s.Require().NoError(err)

	profile, err := s.userService.GetPublicProfile("alice")
	s.Require().NoError(err)
	s.Equal("alice", profile.User.Username)
	s.Empty(profile.User.Email, "public profiles never expose the email")
	s.Require().Len(profile.Artworks, 1, "private artworks stay off the profile")
	s.Equal(public.ID, profile.Artworks[0].ID)

	s.Equal(int64(1), profile.Stats.Artworks)
	s.Equal(int64(2), profile.Stats.TotalViews)
	s.Equal(int64(1), profile.Stats.TotalLikes)
	s.Zero(profile.Stats.Followers)
	s.Zero(profile.Stats.Following)
}

func (s *UserServiceIntegrationTestSuite) TestGetPublicProfileNotFound() {
	_, err := s.userService.GetPublicProfile("nobody")
	s.ErrorIs(err, service.ErrUserNotFound)
}

func (s *UserServiceIntegrationTestSuite) TestGetMeIncludesEmail() {
	me, err := s.userService.GetMe(s.alice.ID)
	s.Require().NoError(err)
	s.Equal("alice@example.com", me.Email)
}

func (s *UserServiceIntegrationTestSuite) TestUpdateProfilePartial() {
	bio := "painter of tiny robots"
	updated, err := s.userService.UpdateProfile(s.alice.ID, service.UpdateProfileInput{Bio: &bio})
	s.Require().NoError(err)
	s.Equal(bio, updated.Bio)
	s.Equal(s.alice.DisplayName, updated.DisplayName, "untouched fields keep their values")
	s.Equal(s.alice.Username, updated.Username)

	// Same payload again is a no-op
	again, err := s.userService.UpdateProfile(s.alice.ID, service.UpdateProfileInput{Bio: &bio})
	s.Require().NoError(err)
	s.Equal(updated.Bio, again.Bio)
}

func (s *UserServiceIntegrationTestSuite) TestUpdateProfileSkills() {
	skills := " painting,  3d modeling ,,sculpture "
	updated, err := s.userService.UpdateProfile(s.alice.ID, service.UpdateProfileInput{Skills: &skills})
	s.Require().NoError(err)
	s.Equal([]string{"painting", "3d modeling", "sculpture"}, updated.Skills)

	empty := ""
	updated, err = s.userService.UpdateProfile(s.alice.ID, service.UpdateProfileInput{Skills: &empty})
	s.Require().NoError(err)
	s.Empty(updated.Skills)
}

func (s *UserServiceIntegrationTestSuite) TestUpdateProfileBioTooLong() {
	long := strings.Repeat("x", 501)
	_, err := s.userService.UpdateProfile(s.alice.ID, service.UpdateProfileInput{Bio: &long})

	var vErr *service.ValidationError
	s.ErrorAs(err, &vErr)
}

func (s *UserServiceIntegrationTestSuite) TestUpdateAccountEmail() {
	updated, err := s.userService.UpdateAccount(s.alice.ID, "Alice.New@Example.com", "", "")
	s.Require().NoError(err)
	s.Equal("alice.new@example.com", updated.Email)
}

func (s *UserServiceIntegrationTestSuite) TestUpdateAccountEmailConflict() {
	_, err := s.userService.UpdateAccount(s.alice.ID, "bob@example.com", "", "")
	s.ErrorIs(err, service.ErrEmailInUse)
}

func (s *UserServiceIntegrationTestSuite) TestUpdateAccountPasswordRequiresCurrent() {
	_, err := s.userService.UpdateAccount(s.alice.ID, "", "", "newsecret")
	s.ErrorIs(err, service.ErrCurrentPasswordRequired)
}

func (s *UserServiceIntegrationTestSuite) TestUpdateAccountWrongCurrentPassword() {
	_, err := s.userService.UpdateAccount(s.alice.ID, "", "not-the-password", "newsecret")
	s.ErrorIs(err, service.ErrWrongPassword)

	// The stored hash is untouched: the old password still verifies
	stored, err := s.userRepo.GetUserByID(s.alice.ID)
	s.Require().NoError(err)
	valid, err := utils.VerifyPassword("secret1", stored.PasswordHash)
	s.Require().NoError(err)
	s.True(valid)
}

func (s *UserServiceIntegrationTestSuite) TestUpdateAccountPasswordChange() {
	_, err := s.userService.UpdateAccount(s.alice.ID, "", "secret1", "brand-new-secret")
	s.Require().NoError(err)

	stored, err := s.userRepo.GetUserByID(s.alice.ID)
	s.Require().NoError(err)

	valid, err := utils.VerifyPassword("brand-new-secret", stored.PasswordHash)
	s.Require().NoError(err)
	s.True(valid)

	valid, err = utils.VerifyPassword("secret1", stored.PasswordHash)
	s.Require().NoError(err)
	s.False(valid, "the old password no longer verifies")
}

func (s *UserServiceIntegrationTestSuite) TestUpdateImageSlots() {
	ctx := context.Background()

	updated, err := s.userService.UpdateImage(ctx, s.alice.ID, service.SlotProfilePicture, userUpload())
	s.Require().NoError(err)
	s.NotEmpty(updated.ProfilePicture)
	s.NotEmpty(updated.ProfilePictureKey)
	s.True(s.blobStore.Has(updated.ProfilePictureKey))
	firstKey := updated.ProfilePictureKey

	// Replacing the avatar deletes the previous asset
	updated, err = s.userService.UpdateImage(ctx, s.alice.ID, service.SlotProfilePicture, userUpload())
	s.Require().NoError(err)
	s.NotEqual(firstKey, updated.ProfilePictureKey)
	s.False(s.blobStore.Has(firstKey))

	// The cover slot is independent
	updated, err = s.userService.UpdateImage(ctx, s.alice.ID, service.SlotCoverImage, userUpload())
	s.Require().NoError(err)
	s.NotEmpty(updated.CoverImage)
	s.NotEmpty(updated.ProfilePicture, "setting the cover leaves the avatar alone")
}

func (s *UserServiceIntegrationTestSuite) TestUpdateImageClearsSlot() {
	ctx := context.Background()

	updated, err := s.userService.UpdateImage(ctx, s.alice.ID, service.SlotProfilePicture, userUpload())
	s.Require().NoError(err)
	key := updated.ProfilePictureKey

	updated, err = s.userService.UpdateImage(ctx, s.alice.ID, service.SlotProfilePicture, nil)
	s.Require().NoError(err)
	s.Empty(updated.ProfilePicture)
	s.Empty(updated.ProfilePictureKey)
	s.False(s.blobStore.Has(key))
}

func (s *UserServiceIntegrationTestSuite) TestUpdateImageSurvivesAssetDeleteFailure() {
	ctx := context.Background()

	updated, err := s.userService.UpdateImage(ctx, s.alice.ID, service.SlotProfilePicture, userUpload())
	s.Require().NoError(err)
	firstKey := updated.ProfilePictureKey

	s.blobStore.FailDelete = true
	updated, err = s.userService.UpdateImage(ctx, s.alice.ID, service.SlotProfilePicture, userUpload())
	s.Require().NoError(err, "a failing asset delete never aborts the update")
	s.NotEqual(firstKey, updated.ProfilePictureKey)
}

func (s *UserServiceIntegrationTestSuite) TestDeleteAccountCascades() {
	ctx := context.Background()

	_, err := s.userService.UpdateImage(ctx, s.alice.ID, service.SlotProfilePicture, userUpload())
	s.Require().NoError(err)

	artwork, err := s.artworkService.Create(ctx, s.alice.ID, uploadInput("Doomed", "digital"))
	s.Require().NoError(err)
	_, err = s.artworkService.PostComment(artwork.ID, s.bob.ID, "nice")
	s.Require().NoError(err)
	_, _, err = s.artworkService.ToggleLike(artwork.ID, s.bob.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.userService.DeleteAccount(ctx, s.alice.ID))

	_, err = s.userService.GetMe(s.alice.ID)
	s.ErrorIs(err, service.ErrUserNotFound)

	remaining, err := s.artworkRepo.GetArtworksByArtist(s.alice.ID)
	s.Require().NoError(err)
	s.Empty(remaining)

	_, err = s.artworkService.GetByID(artwork.ID)
	s.ErrorIs(err, service.ErrArtworkNotFound)

	s.False(s.blobStore.Has(artwork.ImageKey))

	// Bob is unaffected
	_, err = s.userService.GetMe(s.bob.ID)
	s.NoError(err)
}

func (s *UserServiceIntegrationTestSuite) TestDeleteAccountSurvivesAssetDeleteFailure() {
	ctx := context.Background()

	_, err := s.artworkService.Create(ctx, s.alice.ID, uploadInput("Sticky", "digital"))
	s.Require().NoError(err)

	s.blobStore.FailDelete = true
	s.Require().NoError(s.userService.DeleteAccount(ctx, s.alice.ID))

	_, err = s.userService.GetMe(s.alice.ID)
	s.ErrorIs(err, service.ErrUserNotFound)
}

func (s *UserServiceIntegrationTestSuite) TestSearchUsers() {
	_, err := s.userService.SearchUsers("a")
	s.ErrorIs(err, service.ErrSearchQueryTooShort)

	results, err := s.userService.SearchUsers("AL")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("alice", results[0].Username)

	results, err = s.userService.SearchUsers("zz")
	s.Require().NoError(err)
	s.Empty(results)
}

func TestUserServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceIntegrationTestSuite))
}
