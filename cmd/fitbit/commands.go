package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrsteele09/go-fitbit-client/fitbit"
	"github.com/rs/zerolog/log"
)

type LoginCmd struct{}

// Execute always runs the handshake, replacing any saved token
func (c *LoginCmd) Execute(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(options.settings())
	if err != nil {
		return err
	}
	record, err := a.handshake.Begin(ctx)
	if err != nil {
		return err
	}
	if err := a.manager.Persist(record); err != nil {
		return err
	}
	log.Info().Str("user", record.Subject()).Str("scope", record.Scope).Str("file", options.settings().GetTokenFile()).Msg("Token saved")
	return nil
}

type RefreshCmd struct{}

func (c *RefreshCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		if _, err := a.manager.Refresh(ctx); err != nil {
			return err
		}
		fmt.Printf("Token valid until %s\n", a.manager.ExpiresAt().Local().Format("2006-01-02 15:04:05"))
		return nil
	})
}

type IntrospectCmd struct{}

func (c *IntrospectCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		ti, err := a.manager.Introspect(ctx)
		if err != nil {
			return err
		}
		return printJSON(ti)
	})
}

type RevokeCmd struct{}

func (c *RevokeCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.manager.Revoke(ctx); err != nil {
			return err
		}
		fmt.Println("Token revoked, run login to authorize again")
		return nil
	})
}

type ProfileCmd struct{}

func (c *ProfileCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		profile, err := a.client.GetProfile(ctx)
		if err != nil {
			return err
		}
		return printJSON(profile)
	})
}

type DevicesCmd struct{}

func (c *DevicesCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		devices, err := a.client.GetDevices(ctx)
		if err != nil {
			return err
		}
		return printJSON(devices)
	})
}

type AlarmsCmd struct {
	TrackerID string `short:"t" long:"tracker" description:"tracker id, defaults to the first paired device"`
}

func (c *AlarmsCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		alarms, err := a.client.GetAlarms(ctx, c.TrackerID)
		if err != nil {
			return err
		}
		return printJSON(alarms)
	})
}

type ActivityCmd struct {
	Date string `short:"d" long:"date" description:"yyyy-MM-dd, defaults to today"`
}

func (c *ActivityCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		summary, err := a.client.GetDailyActivitySummary(ctx, c.Date)
		if err != nil {
			return err
		}
		return printJSON(summary)
	})
}

type SleepCmd struct {
	Date string `short:"d" long:"date" description:"yyyy-MM-dd, defaults to today"`
}

func (c *SleepCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		sleep, err := a.client.GetSleepLogByDate(ctx, c.Date)
		if err != nil {
			return err
		}
		return printJSON(sleep)
	})
}

type SubscribeCmd struct {
	Collection string `short:"c" long:"collection" choice:"activities" choice:"body" choice:"foods" choice:"sleep" choice:"userRevokedAccess" description:"collection, all collections when omitted"`
	ID         string `long:"id" description:"subscription id, a random UUID when omitted"`
}

func (c *SubscribeCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		result, err := a.client.CreateSubscription(ctx, fitbit.CollectionType(c.Collection), c.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Subscription %s: status %d\n", result.SubscriptionID, result.Status)
		return printJSON(result.Body)
	})
}

type SubscriptionsCmd struct {
	Collection string `short:"c" long:"collection" description:"only list subscriptions of this collection"`
}

func (c *SubscriptionsCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		subs, err := a.client.ListSubscriptions(ctx, fitbit.CollectionType(c.Collection))
		if err != nil {
			return err
		}
		return printJSON(subs)
	})
}

type UnsubscribeCmd struct {
	Collection string `short:"c" long:"collection" description:"collection the subscription was created for"`
	ID         string `long:"id" required:"true" description:"subscription id"`
}

func (c *UnsubscribeCmd) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.client.DeleteSubscription(ctx, fitbit.CollectionType(c.Collection), c.ID); err != nil {
			return err
		}
		fmt.Printf("Subscription %s deleted\n", c.ID)
		return nil
	})
}
