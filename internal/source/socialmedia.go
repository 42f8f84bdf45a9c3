package source

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/people-aggregator/internal/model"
)

var usernameCharsRe = regexp.MustCompile(`[^a-z0-9_]`)

// defaultPlatformURLs maps platform name to its profile URL pattern.
var defaultPlatformURLs = map[string]string{
	"facebook":  "https://facebook.com/%s",
	"twitter":   "https://twitter.com/%s",
	"instagram": "https://instagram.com/%s",
	"linkedin":  "https://linkedin.com/in/%s",
	"github":    "https://github.com/%s",
	"reddit":    "https://reddit.com/user/%s",
	"tiktok":    "https://tiktok.com/@%s",
	"youtube":   "https://youtube.com/@%s",
}

// SocialMedia probes social platforms for profiles matching the query.
type SocialMedia struct {
	fetch         *Fetcher
	twitterBase   string
	instagramBase string
	githubAPIBase string
	redditBase    string
	platforms     map[string]string
}

// NewSocialMedia creates the social media adapter.
func NewSocialMedia(f *Fetcher) *SocialMedia {
	return &SocialMedia{
		fetch:         f,
		twitterBase:   "https://twitter.com",
		instagramBase: "https://www.instagram.com",
		githubAPIBase: "https://api.github.com",
		redditBase:    "https://www.reddit.com",
		platforms:     defaultPlatformURLs,
	}
}

func (s *SocialMedia) Name() string     { return "socialmedia" }
func (s *SocialMedia) Category() string { return CategorySocial }

func (s *SocialMedia) Capabilities() []model.QueryField {
	return []model.QueryField{model.FieldName, model.FieldUsername, model.FieldEmail}
}

func (s *SocialMedia) Search(ctx context.Context, query model.Query) model.SourceResult {
	username := query.Username
	if username == "" {
		username = usernameFromName(query.Name)
	}

	var mu sync.Mutex
	platforms := make(map[string]model.PlatformResult)

	record := func(platform string, pr model.PlatformResult, err error) {
		pr.Platform = platform
		if pr.Profiles == nil {
			pr.Profiles = []model.Profile{}
		}
		if err != nil {
			zap.L().Debug("socialmedia: platform lookup failed",
				zap.String("platform", platform),
				zap.Error(err),
			)
			pr.Error = err.Error()
		}
		mu.Lock()
		platforms[platform] = pr
		mu.Unlock()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Facebook gates search behind a login wall; profile discovery for it
		// rides on the search-engine adapter's site: operators instead.
		record("facebook", model.PlatformResult{}, nil)
		return nil
	})
	g.Go(func() error {
		pr, err := s.profileProbe(gCtx, "twitter", s.twitterBase+"/"+username, username)
		record("twitter", pr, err)
		return nil
	})
	g.Go(func() error {
		pr, err := s.profileProbe(gCtx, "instagram", s.instagramBase+"/"+username+"/", username)
		record("instagram", pr, err)
		return nil
	})
	g.Go(func() error {
		// LinkedIn requires authentication; covered by search-engine dorking.
		record("linkedin", model.PlatformResult{}, nil)
		return nil
	})
	g.Go(func() error {
		pr, err := s.github(gCtx, query)
		record("github", pr, err)
		return nil
	})
	g.Go(func() error {
		pr, err := s.reddit(gCtx, username)
		record("reddit", pr, err)
		return nil
	})
	_ = g.Wait()

	return model.SourceResult{
		Source:    s.Name(),
		Platforms: platforms,
	}
}

// profileProbe checks whether a profile URL answers 200.
func (s *SocialMedia) profileProbe(ctx context.Context, platform, profileURL, username string) (model.PlatformResult, error) {
	if username == "" {
		return model.PlatformResult{}, nil
	}
	exists, err := s.fetch.Exists(ctx, profileURL)
	if err != nil {
		return model.PlatformResult{}, eris.Wrapf(err, "socialmedia: %s probe", platform)
	}
	pr := model.PlatformResult{}
	if exists {
		pr.Profiles = []model.Profile{{
			Platform: platform,
			Username: username,
			URL:      profileURL,
			Exists:   true,
		}}
	}
	return pr, nil
}

func (s *SocialMedia) github(ctx context.Context, query model.Query) (model.PlatformResult, error) {
	term := query.Username
	if term == "" {
		term = query.Email
	}
	if term == "" {
		return model.PlatformResult{}, nil
	}

	var payload struct {
		Items []struct {
			Login     string `json:"login"`
			HTMLURL   string `json:"html_url"`
			AvatarURL string `json:"avatar_url"`
		} `json:"items"`
	}
	u := s.githubAPIBase + "/search/users?q=" + url.QueryEscape(term)
	if err := s.fetch.GetJSON(ctx, u, acceptGitHub(), &payload); err != nil {
		return model.PlatformResult{}, eris.Wrap(err, "socialmedia: github search")
	}

	pr := model.PlatformResult{}
	for _, item := range payload.Items {
		pr.Profiles = append(pr.Profiles, model.Profile{
			Platform: "github",
			Username: item.Login,
			URL:      item.HTMLURL,
			Avatar:   item.AvatarURL,
			Exists:   true,
		})
	}
	return pr, nil
}

func (s *SocialMedia) reddit(ctx context.Context, username string) (model.PlatformResult, error) {
	if username == "" {
		return model.PlatformResult{}, nil
	}

	var payload struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	u := s.redditBase + "/user/" + url.PathEscape(username) + "/about.json"
	if err := s.fetch.GetJSON(ctx, u, nil, &payload); err != nil {
		return model.PlatformResult{}, eris.Wrap(err, "socialmedia: reddit lookup")
	}
	if payload.Data.Name == "" {
		return model.PlatformResult{}, nil
	}
	return model.PlatformResult{
		Profiles: []model.Profile{{
			Platform: "reddit",
			Username: payload.Data.Name,
			URL:      "https://www.reddit.com/user/" + payload.Data.Name,
			Exists:   true,
		}},
	}, nil
}

// CheckUsername probes every known platform for the username and reports
// which profile URLs answered.
func (s *SocialMedia) CheckUsername(ctx context.Context, username string) map[string]model.Profile {
	var mu sync.Mutex
	out := make(map[string]model.Profile, len(s.platforms))

	g, gCtx := errgroup.WithContext(ctx)
	for platform, pattern := range s.platforms {
		profileURL := strings.Replace(pattern, "%s", url.PathEscape(username), 1)
		g.Go(func() error {
			exists, err := s.fetch.Exists(gCtx, profileURL)
			if err != nil {
				zap.L().Debug("socialmedia: username probe failed",
					zap.String("platform", platform),
					zap.Error(err),
				)
				exists = false
			}
			mu.Lock()
			out[platform] = model.Profile{
				Platform: platform,
				Username: username,
				URL:      profileURL,
				Exists:   exists,
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func acceptGitHub() http.Header {
	return http.Header{"Accept": {"application/vnd.github.v3+json"}}
}

// usernameFromName derives a candidate handle from a person name.
func usernameFromName(name string) string {
	if name == "" {
		return ""
	}
	return usernameCharsRe.ReplaceAllString(strings.ReplaceAll(strings.ToLower(name), " ", ""), "")
}
