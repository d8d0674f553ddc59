package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutricoach/server/internal/adherence"
	"github.com/nutricoach/server/internal/clients"
	"github.com/nutricoach/server/internal/dailylog"
	"github.com/nutricoach/server/internal/nutrition"
)

func (s *IntegrationTestSuite) TestClientOnboardingFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	// add a new client
	resp := s.doRequest(ctx, t, "POST", "/clients", token, clients.Profile{
		Name:  "Mira",
		Email: "mira@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var addedProfile clients.Profile
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(respBytes, &addedProfile))
	require.NotZero(t, addedProfile.ID)
	assert.Nil(t, addedProfile.OnboardedAt)

	// complete onboarding with the intake biometrics
	resp = s.doRequest(ctx, t, "POST", fmt.Sprintf("/clients/%d/onboarding", addedProfile.ID), token, clients.Biometrics{
		Gender:        nutrition.GenderMale,
		BirthDate:     time.Now().AddDate(-30, 0, 0),
		HeightCm:      180,
		WeightKg:      80,
		ActivityLevel: nutrition.ActivityModerate,
		Goal:          nutrition.GoalMaintain,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var onboardingResult clients.OnboardingResult
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(respBytes, &onboardingResult))

	assert.NotNil(t, onboardingResult.Profile.OnboardedAt)
	assert.Equal(t, 2873, onboardingResult.RestDay.Calories)
	assert.Equal(t, 3073, onboardingResult.TrainingDay.Calories)

	// both derived targets are stored and active
	resp = s.doRequest(ctx, t, "GET", fmt.Sprintf("/clients/%d/targets", addedProfile.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var targetsResp nutrition.TargetsResponse
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(respBytes, &targetsResp))
	require.Len(t, targetsResp.Targets, 2)
	for _, target := range targetsResp.Targets {
		assert.True(t, target.IsActive)
		assert.Equal(t, addedProfile.ID, target.ClientID)
	}

	// log a day close to the rest target
	resp = s.doRequest(ctx, t, "POST", fmt.Sprintf("/clients/%d/logs", addedProfile.ID), token, dailylog.DailyLog{
		Date:           time.Now(),
		DayType:        nutrition.DayTypeRest,
		ActualCalories: 2900,
		IsCompleted:    true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// the dashboard shows the client on track
	resp = s.doRequest(ctx, t, "GET", "/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dashboardResp adherence.DashboardResponse
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(respBytes, &dashboardResp))

	var mira *adherence.ClientStatus
	for i := range dashboardResp.Clients {
		if dashboardResp.Clients[i].ClientID == addedProfile.ID {
			mira = &dashboardResp.Clients[i]
		}
	}
	require.NotNil(t, mira)
	assert.Equal(t, adherence.StatusGreen, mira.Status)
}

func (s *IntegrationTestSuite) TestSetTargetDeactivatesPrevious() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	resp := s.doRequest(ctx, t, "POST", "/clients", token, clients.Profile{
		Name:  "Vuk",
		Email: "vuk@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var addedProfile clients.Profile
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(respBytes, &addedProfile))

	setTarget := func(calories int) {
		resp := s.doRequest(ctx, t, "POST", fmt.Sprintf("/clients/%d/targets/training", addedProfile.ID), token, nutrition.SetTargetRequest{
			Calories:     calories,
			ProteinGrams: 150,
			FatsGrams:    60,
			CarbsGrams:   250,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	setTarget(2400)
	setTarget(2600)

	resp = s.doRequest(ctx, t, "GET", fmt.Sprintf("/clients/%d/targets", addedProfile.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var targetsResp nutrition.TargetsResponse
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(respBytes, &targetsResp))

	// only the latest training target stays active
	require.Len(t, targetsResp.Targets, 1)
	assert.Equal(t, 2600, targetsResp.Targets[0].Calories)

	resp = s.doRequest(ctx, t, "GET", fmt.Sprintf("/clients/%d/targets/history", addedProfile.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(respBytes, &targetsResp))
	require.Len(t, targetsResp.Targets, 2)
}
