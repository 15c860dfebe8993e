package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"pressroom-backend/internal/domains/site"
	"pressroom-backend/internal/infrastructure/wordpress"
	"pressroom-backend/internal/shared/utils"
)

type siteService struct {
	repo          site.Repository
	gateway       wordpress.Gateway
	reloads       singleflight.Group
	backoffWindow time.Duration
}

// NewSiteService wires the taxonomy cache over the persisted store and
// the WordPress gateway.
func NewSiteService(repo site.Repository, gateway wordpress.Gateway, backoffWindow time.Duration) site.Service {
	if backoffWindow <= 0 {
		backoffWindow = 30 * time.Minute
	}
	return &siteService{
		repo:          repo,
		gateway:       gateway,
		backoffWindow: backoffWindow,
	}
}

// Sync merges the registry snapshot into the cached site list.
// Running it twice with the same snapshot is a no-op; a site's cached
// taxonomy survives every merge as long as the site stays registered.
func (s *siteService) Sync(ctx context.Context, snapshot []site.RegistrySite) (*site.SyncResult, error) {
	if snapshot == nil {
		loaded, err := s.repo.LoadRegistry(ctx)
		if err != nil {
			return nil, err
		}
		snapshot = loaded
	}
	if len(snapshot) == 0 {
		return nil, site.ErrEmptyRegistry
	}

	cached, err := s.repo.GetSites(ctx)
	if err != nil {
		return nil, err
	}

	cachedByID := make(map[string]site.Site, len(cached))
	for _, c := range cached {
		cachedByID[c.ID] = c
	}

	result := &site.SyncResult{}
	merged := make([]site.Site, 0, len(snapshot))
	seen := make(map[string]bool, len(snapshot))

	for _, reg := range snapshot {
		id := utils.NormalizeID(reg.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		url := reg.URL
		if normalized, err := wordpress.NormalizeBaseURL(reg.URL); err == nil {
			url = normalized
		} else {
			log.Warn().Str("site_id", id).Str("url", reg.URL).Msg("registry entry has invalid URL, keeping raw value")
		}

		if existing, ok := cachedByID[id]; ok {
			// Credentials and metadata follow the registry, cached
			// taxonomy stays untouched.
			existing.Name = reg.Name
			existing.URL = url
			existing.Username = reg.Username
			existing.AppPassword = reg.AppPassword
			merged = append(merged, existing)
			result.Updated++
			continue
		}

		newSite := site.Site{
			ID:          id,
			Name:        reg.Name,
			URL:         url,
			Username:    reg.Username,
			AppPassword: reg.AppPassword,
			Categories:  []site.Category{},
			Authors:     []site.Author{},
			Tags:        []site.Tag{},
			Status:      site.StatusUnknown,
		}
		if !newSite.Credentials().Empty() {
			s.hydrate(ctx, &newSite)
		}
		merged = append(merged, newSite)
		result.Added++
	}

	for id := range cachedByID {
		if !seen[id] {
			result.Removed++
		}
	}
	result.Total = len(merged)

	if err := s.repo.SaveSites(ctx, merged); err != nil {
		return nil, err
	}

	log.Info().
		Int("added", result.Added).
		Int("updated", result.Updated).
		Int("removed", result.Removed).
		Msg("site registry synced")
	return result, nil
}

func (s *siteService) ListSites(ctx context.Context) ([]site.Site, error) {
	return s.repo.GetSites(ctx)
}

func (s *siteService) GetSite(ctx context.Context, id string) (*site.Site, error) {
	sites, err := s.repo.GetSites(ctx)
	if err != nil {
		return nil, err
	}

	wanted := utils.NormalizeID(id)
	for i := range sites {
		if utils.SameID(sites[i].ID, wanted) {
			return &sites[i], nil
		}
	}
	return nil, site.ErrSiteNotFound
}

// ReloadSite collapses concurrent reloads of one site into a single
// upstream round trip; every waiter gets the same result.
func (s *siteService) ReloadSite(ctx context.Context, id string) (*site.Site, error) {
	key := utils.NormalizeID(id)

	v, err, _ := s.reloads.Do(key, func() (interface{}, error) {
		return s.doReload(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*site.Site), nil
}

func (s *siteService) doReload(ctx context.Context, id string) (*site.Site, error) {
	target, err := s.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}

	// Fail fast before any network traffic.
	if target.Credentials().Empty() {
		return nil, site.ErrMissingCredentials
	}

	if s.inBackoff(ctx, target.ID) {
		return nil, site.ErrSiteInBackoff
	}

	failed, hydrateErr := s.hydrate(ctx, target)

	if target.Status == site.StatusUnreachable {
		s.recordBackoff(ctx, target.ID, target.Status)
	}

	// Every read failing means there is nothing fresher than what is
	// already cached. Keep the cached taxonomy and surface the failure.
	if failed == taxonomyReads {
		return nil, hydrateErr
	}

	if err := s.saveSite(ctx, *target); err != nil {
		return nil, err
	}
	return target, nil
}

// taxonomyReads is the number of per-site taxonomy endpoints.
const taxonomyReads = 3

// hydrate refetches all three taxonomies concurrently. Individual read
// failures degrade to placeholders instead of propagating: the pipeline
// must keep working against a site whose reads are flaky. The failure
// count lets the caller tell partial degradation apart from a site that
// produced nothing at all.
func (s *siteService) hydrate(ctx context.Context, target *site.Site) (int, error) {
	creds := target.Credentials()

	var (
		categories []wordpress.Category
		authors    []wordpress.Author
		tags       []wordpress.Tag
		catErr     error
		authorErr  error
		tagErr     error
	)

	var wg sync.WaitGroup
	wg.Add(taxonomyReads)
	go func() {
		defer wg.Done()
		categories, catErr = s.gateway.ListCategories(ctx, target.URL, creds)
	}()
	go func() {
		defer wg.Done()
		authors, authorErr = s.gateway.ListAuthors(ctx, target.URL, creds)
	}()
	go func() {
		defer wg.Done()
		tags, tagErr = s.gateway.ListTags(ctx, target.URL, creds)
	}()
	wg.Wait()

	failed := 0
	var firstErr error
	note := func(err error) {
		failed++
		if firstErr == nil {
			firstErr = err
		}
	}

	if catErr != nil {
		log.Warn().Err(catErr).Str("site_id", target.ID).Msg("category fetch degraded to placeholder")
		target.Categories = site.PlaceholderCategories()
		note(catErr)
	} else {
		target.Categories = make([]site.Category, 0, len(categories))
		for _, c := range categories {
			target.Categories = append(target.Categories, site.Category{
				ID:   strconv.Itoa(c.ID),
				Name: c.Name,
			})
		}
	}

	if authorErr != nil {
		log.Warn().Err(authorErr).Str("site_id", target.ID).Msg("author fetch degraded to placeholder")
		target.Authors = site.PlaceholderAuthors()
		note(authorErr)
	} else {
		target.Authors = make([]site.Author, 0, len(authors))
		for _, a := range authors {
			target.Authors = append(target.Authors, site.Author{
				ID:   strconv.Itoa(a.ID),
				Name: a.Name,
			})
		}
	}

	if tagErr != nil {
		log.Warn().Err(tagErr).Str("site_id", target.ID).Msg("tag fetch degraded to empty list")
		target.Tags = []site.Tag{}
		note(tagErr)
	} else {
		target.Tags = make([]site.Tag, 0, len(tags))
		for _, tag := range tags {
			target.Tags = append(target.Tags, site.Tag{
				ID:   strconv.Itoa(tag.ID),
				Name: tag.Name,
				Slug: tag.Slug,
			})
		}
	}

	target.Degraded = failed > 0
	if firstErr != nil {
		target.Status = statusFromError(firstErr)
	} else {
		target.Status = site.StatusOK
		now := time.Now().UTC()
		target.LastSyncedAt = &now
	}
	return failed, firstErr
}

func (s *siteService) CheckConnectivity(ctx context.Context, id string) (*site.ConnectivityReport, error) {
	target, err := s.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &site.ConnectivityReport{
		SiteID:    target.ID,
		CheckedAt: time.Now().UTC(),
	}

	if target.Credentials().Empty() {
		report.Status = site.StatusCredentialError
		report.Message = site.GetErrorMessage(site.ErrMissingCredentials)
		return report, nil
	}

	checkErr := s.gateway.CheckConnectivity(ctx, target.URL, target.Credentials())
	if checkErr == nil {
		// A reachable site with an old taxonomy snapshot is outdated,
		// not broken. The fix is a reload, not new credentials.
		if target.LastSyncedAt == nil || time.Since(*target.LastSyncedAt) >= site.TaxonomyStaleAfter {
			report.Status = site.StatusOutdated
			report.Message = "site reachable, taxonomy snapshot is stale, reload recommended"
		} else {
			report.Status = site.StatusOK
			report.Message = "site reachable, credentials accepted"
		}
	} else {
		report.Status = statusFromError(checkErr)
		report.Retryable = wordpress.IsRetryable(checkErr)
		report.Message = wordpress.UserMessage(wordpress.KindOf(checkErr))

		if report.Status == site.StatusUnreachable {
			s.recordBackoff(ctx, target.ID, report.Status)
		}
	}

	target.Status = report.Status
	if err := s.saveSite(ctx, *target); err != nil {
		log.Warn().Err(err).Str("site_id", target.ID).Msg("failed to persist connectivity status")
	}
	return report, nil
}

// CreateTag appends a provisional entry so the tag is usable right
// away, then reconciles it with the server-assigned id. On upstream
// failure the provisional entry is rolled back.
func (s *siteService) CreateTag(ctx context.Context, siteID, name string) (*site.Tag, error) {
	if name == "" {
		return nil, site.ErrTagNameRequired
	}

	target, err := s.GetSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if target.Credentials().Empty() {
		return nil, site.ErrMissingCredentials
	}

	provisional := site.Tag{
		ID:   strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name: name,
		Slug: utils.GenerateSlug(name),
	}
	target.Tags = append(target.Tags, provisional)
	if err := s.saveSite(ctx, *target); err != nil {
		return nil, err
	}

	created, createErr := s.gateway.CreateTag(ctx, target.URL, target.Credentials(), name)

	// Re-read before the second write so a concurrent reload's work is
	// not clobbered.
	target, err = s.GetSite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	if createErr != nil {
		target.Tags = removeTag(target.Tags, provisional.ID)
		if saveErr := s.saveSite(ctx, *target); saveErr != nil {
			log.Error().Err(saveErr).Str("site_id", target.ID).Msg("failed to roll back provisional tag")
		}
		return nil, createErr
	}

	reconciled := site.Tag{
		ID:   strconv.Itoa(created.ID),
		Name: created.Name,
		Slug: created.Slug,
	}
	target.Tags = removeTag(target.Tags, provisional.ID)
	target.Tags = append(target.Tags, reconciled)
	if err := s.saveSite(ctx, *target); err != nil {
		return nil, err
	}

	log.Info().
		Str("site_id", target.ID).
		Str("provisional_id", provisional.ID).
		Str("tag_id", reconciled.ID).
		Msg("tag created and reconciled")
	return &reconciled, nil
}

func (s *siteService) RefreshStale(ctx context.Context, olderThan time.Duration, maxSites int) (int, error) {
	sites, err := s.repo.GetSites(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-olderThan)
	refreshed := 0
	for _, candidate := range sites {
		if maxSites > 0 && refreshed >= maxSites {
			break
		}
		if candidate.Credentials().Empty() {
			continue
		}
		if candidate.LastSyncedAt != nil && candidate.LastSyncedAt.After(cutoff) {
			continue
		}

		if _, err := s.ReloadSite(ctx, candidate.ID); err != nil {
			log.Warn().Err(err).Str("site_id", candidate.ID).Msg("stale refresh failed")
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

func (s *siteService) PruneBackoff(ctx context.Context, window time.Duration) (int, error) {
	entries, err := s.repo.GetInaccessible(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-window)
	kept := entries[:0]
	for _, entry := range entries {
		if entry.RecordedAt.After(cutoff) {
			kept = append(kept, entry)
		}
	}

	removed := len(entries) - len(kept)
	if removed > 0 {
		if err := s.repo.SaveInaccessible(ctx, kept); err != nil {
			return 0, err
		}
	}
	return removed, nil
}

// saveSite writes one site back into the cached list.
func (s *siteService) saveSite(ctx context.Context, updated site.Site) error {
	sites, err := s.repo.GetSites(ctx)
	if err != nil {
		return err
	}

	for i := range sites {
		if utils.SameID(sites[i].ID, updated.ID) {
			sites[i] = updated
			return s.repo.SaveSites(ctx, sites)
		}
	}
	sites = append(sites, updated)
	return s.repo.SaveSites(ctx, sites)
}

func (s *siteService) inBackoff(ctx context.Context, siteID string) bool {
	entries, err := s.repo.GetInaccessible(ctx)
	if err != nil {
		return false
	}

	cutoff := time.Now().UTC().Add(-s.backoffWindow)
	for _, entry := range entries {
		if entry.SiteID == siteID && entry.RecordedAt.After(cutoff) {
			return true
		}
	}
	return false
}

func (s *siteService) recordBackoff(ctx context.Context, siteID string, status site.ConnectivityStatus) {
	entries, err := s.repo.GetInaccessible(ctx)
	if err != nil {
		log.Warn().Err(err).Str("site_id", siteID).Msg("failed to load backoff entries")
		return
	}

	kept := entries[:0]
	for _, entry := range entries {
		if entry.SiteID != siteID {
			kept = append(kept, entry)
		}
	}
	kept = append(kept, site.InaccessibleEntry{
		SiteID:     siteID,
		Status:     status,
		RecordedAt: time.Now().UTC(),
	})

	if err := s.repo.SaveInaccessible(ctx, kept); err != nil {
		log.Warn().Err(err).Str("site_id", siteID).Msg("failed to record backoff entry")
	}
}

func statusFromError(err error) site.ConnectivityStatus {
	switch wordpress.KindOf(err) {
	case wordpress.KindCredentials:
		return site.StatusCredentialError
	case wordpress.KindPermissions:
		return site.StatusPermissionError
	case wordpress.KindBlocked:
		return site.StatusBlocked
	case wordpress.KindTimeout, wordpress.KindConnectivity, wordpress.KindServerError:
		return site.StatusUnreachable
	default:
		return site.StatusUnknown
	}
}

func removeTag(tags []site.Tag, id string) []site.Tag {
	out := tags[:0]
	for _, tag := range tags {
		if tag.ID != id {
			out = append(out, tag)
		}
	}
	return out
}
