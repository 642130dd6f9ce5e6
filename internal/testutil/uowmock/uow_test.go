package uowmock

import (
	"context"
	"errors"
	"testing"

	"sba-portal/internal/domain/application"
	"sba-portal/internal/domain/uow"
	"sba-portal/internal/testutil/applicationmock"
	"sba-portal/internal/testutil/documentmock"
)

func TestUoW_WithinTx_ForwardsRepos(t *testing.T) {
	ctx := context.Background()
	apps := &applicationmock.Repo{}
	docs := &documentmock.Repo{}
	repos := uow.Repos{Applications: apps, Documents: docs}

	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}
	called := false
	err := m.WithinTx(ctx, func(r uow.Repos) error {
		called = true
		if r.Applications != apps || r.Documents != docs {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil || !called {
		t.Fatalf("WithinTx: err=%v called=%v", err, called)
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := New()
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinApplicationTx(ctx, "A-1", func(uow.Repos, *application.Application) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinApplicationTx default: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_LocksThroughRepo(t *testing.T) {
	ctx := context.Background()
	want := &application.Application{ApplicationID: "A-7"}
	apps := &applicationmock.Repo{
		GetByApplicationIDForUpdateFn: func(_ context.Context, applicationID string) (*application.Application, error) {
			if applicationID != "A-7" {
				t.Fatalf("applicationID = %s", applicationID)
			}
			return want, nil
		},
	}
	m := Passthrough(uow.Repos{Applications: apps})
	err := m.WithinApplicationTx(ctx, "A-7", func(_ uow.Repos, a *application.Application) error {
		if a != want {
			t.Fatalf("application not forwarded: %+v", a)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx: %v", err)
	}

	sentinel := errors.New("locked")
	apps.GetByApplicationIDForUpdateFn = func(context.Context, string) (*application.Application, error) { return nil, sentinel }
	called := false
	err = m.WithinApplicationTx(ctx, "A-7", func(uow.Repos, *application.Application) error {
		called = true
		return nil
	})
	if !errors.Is(err, sentinel) || called {
		t.Fatalf("err=%v called=%v", err, called)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New().
		WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinApplicationTx(func(context.Context, string, func(uow.Repos, *application.Application) error) error { return nil })
	if m.WithinTxFn == nil || m.WithinApplicationTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}
	m.Reset()
	if m.WithinTxFn != nil || m.WithinApplicationTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
