package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/internal/testutil"
	"github.com/vitrine/backoffice/pkg/datauri"
)

var pngPixel = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d}

func productIDs(p BannerPayload) []uint {
	ids := make([]uint, len(p.Products))
	for i, ref := range p.Products {
		ids[i] = ref.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestBannerService_StoreAndGet(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	p := seedProducts(t, db, "Boné", "Tênis")
	svc := newBannerService(db, nil, nil)

	image := datauri.Encode("image/png", pngPixel)
	id, err := svc.Store(ctx, BannerInput{
		Title: "Inverno", Description: "Coleção", Active: true,
		Image: image, Products: []uint{p[0].ID, p[1].ID, p[0].ID},
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Inverno", got.Title)
	assert.True(t, got.Active)
	assert.Equal(t, "image/png", got.MimeType)
	assert.Equal(t, image, got.Image)
	assert.Equal(t, []uint{p[0].ID, p[1].ID}, productIDs(got))
	assert.Empty(t, got.ImageURL)

	data, mime, err := svc.Image(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, pngPixel, data)
	assert.Equal(t, "image/png", mime)
}

func TestBannerService_StoreRejectsBadInput(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := newBannerService(db, nil, nil)

	_, err := svc.Store(ctx, BannerInput{Title: "x", Image: "not a data uri"})
	assert.ErrorIs(t, err, datauri.ErrMalformed)

	_, err = svc.Store(ctx, BannerInput{Title: "x", Image: datauri.Encode("image/png", pngPixel), Products: []uint{42}})
	assert.ErrorIs(t, err, ErrUnknownProduct)

	var n int64
	db.Model(&models.Banner{}).Count(&n)
	assert.Zero(t, n)
}

func TestBannerService_UpdateSyncsExactSet(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	p := seedProducts(t, db, "a", "b", "c", "d")
	svc := newBannerService(db, nil, nil)

	id, err := svc.Store(ctx, BannerInput{Title: "x", Image: datauri.Encode("image/png", pngPixel), Products: []uint{p[0].ID, p[1].ID}})
	require.NoError(t, err)

	cases := [][]uint{
		{p[1].ID, p[2].ID},
		{p[3].ID},
		{p[0].ID, p[1].ID, p[2].ID, p[3].ID},
		{},
	}
	for _, want := range cases {
		set := want
		require.NoError(t, svc.Update(ctx, id, BannerUpdate{Products: &set}))
		got, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, productIDs(got))
	}
}

func TestBannerService_UpdateKeepsOmittedFields(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	p := seedProducts(t, db, "a")
	svc := newBannerService(db, nil, nil)

	id, err := svc.Store(ctx, BannerInput{Title: "Old", Description: "desc", Image: datauri.Encode("image/png", pngPixel), Products: []uint{p[0].ID}})
	require.NoError(t, err)

	title := "New"
	gif := datauri.Encode("image/gif", []byte("GIF89a"))
	require.NoError(t, svc.Update(ctx, id, BannerUpdate{Title: &title, Image: &gif}))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, "image/gif", got.MimeType)
	assert.Equal(t, []uint{p[0].ID}, productIDs(got))
}

func TestBannerService_UpdateUnknownProductWritesNothing(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	p := seedProducts(t, db, "a")
	svc := newBannerService(db, nil, nil)

	id, err := svc.Store(ctx, BannerInput{Title: "Old", Image: datauri.Encode("image/png", pngPixel), Products: []uint{p[0].ID}})
	require.NoError(t, err)

	title := "New"
	set := []uint{999}
	err = svc.Update(ctx, id, BannerUpdate{Title: &title, Products: &set})
	require.ErrorIs(t, err, ErrUnknownProduct)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Title)
	assert.Equal(t, []uint{p[0].ID}, productIDs(got))
}

func TestBannerService_MissingBanner(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := newBannerService(db, nil, nil)

	_, err := svc.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrBannerNotFound)

	title := "x"
	assert.ErrorIs(t, svc.Update(ctx, 7, BannerUpdate{Title: &title}), ErrBannerNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 7), ErrBannerNotFound)
}

func TestBannerService_DeleteRemovesLinks(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	p := seedProducts(t, db, "a")
	svc := newBannerService(db, nil, nil)

	id, err := svc.Store(ctx, BannerInput{Title: "x", Image: datauri.Encode("image/png", pngPixel), Products: []uint{p[0].ID}})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id))

	var links int64
	db.Model(&models.BannerProduct{}).Count(&links)
	assert.Zero(t, links)
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrBannerNotFound)
}

func TestBannerService_ListIsCached(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cache := newMemCache()
	svc := newBannerService(db, cache, nil)

	_, err := svc.Store(ctx, BannerInput{Title: "a", Image: datauri.Encode("image/png", pngPixel)})
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.NotNil(t, first[0].Products)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first[0].Image, second[0].Image)

	_, err = svc.Store(ctx, BannerInput{Title: "b", Image: datauri.Encode("image/png", pngPixel)})
	require.NoError(t, err)

	third, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 1, cache.hits)
}

func TestBannerService_ListDropsFillRacingAWrite(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cache := newMemCache()
	svc := newBannerService(db, cache, nil)

	_, err := svc.Store(ctx, BannerInput{Title: "a", Image: datauri.Encode("image/png", pngPixel)})
	require.NoError(t, err)

	// Invalidate once while the banner list is being read, as a concurrent
	// update would.
	raced := false
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:invalidate", func(tx *gorm.DB) {
		if !raced && tx.Statement.Table == "banners" {
			raced = true
			svc.forget(ctx)
		}
	}))

	_, err = svc.List(ctx)
	require.NoError(t, err)
	require.True(t, raced)

	cache.mu.Lock()
	_, stored := cache.items[bannersCacheKey]
	cache.mu.Unlock()
	assert.False(t, stored)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	cache.mu.Lock()
	_, stored = cache.items[bannersCacheKey]
	cache.mu.Unlock()
	assert.True(t, stored)
}
