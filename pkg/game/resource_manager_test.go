package game

import (
	"errors"
	"testing"

	"github.com/tonegarden/starsong/pkg/types"
)

func TestRenderArtDeterministic(t *testing.T) {
	a, err := RenderArt(types.KindNote, 2, 6)
	if err != nil {
		t.Fatalf("RenderArt failed: %v", err)
	}
	b, err := RenderArt(types.KindNote, 2, 6)
	if err != nil {
		t.Fatalf("RenderArt failed: %v", err)
	}

	if len(a.Pix) != len(b.Pix) {
		t.Fatal("Two renders of the same art should have identical dimensions")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("Same kind and variant should produce identical pixels")
		}
	}
}

func TestRenderArtProducesVisiblePixels(t *testing.T) {
	kinds := []types.EntityKind{
		types.KindStar, types.KindNote, types.KindBrokenNote, types.KindLetter,
		types.KindBlackHole, types.KindDestroyedShip,
		types.KindStrafer, types.KindSpinner, types.KindTracker,
	}

	for _, kind := range kinds {
		img, err := RenderArt(kind, 0, 1)
		if err != nil {
			t.Fatalf("RenderArt(%s) failed: %v", kind, err)
		}

		opaque := 0
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] > 0 {
				opaque++
			}
		}
		if opaque == 0 {
			t.Errorf("Art for %s should have at least one opaque pixel", kind)
		}
	}
}

func TestRenderArtVariantsDiffer(t *testing.T) {
	a, _ := RenderArt(types.KindLetter, 0, 7)
	b, _ := RenderArt(types.KindLetter, 3, 7)

	same := true
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different variants should produce different pixels")
	}
}

func TestRenderArtRejectsUnknownKind(t *testing.T) {
	if _, err := RenderArt(types.KindUnknown, 0, 1); !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("Unknown kind should fail with ErrResourceUnavailable, got %v", err)
	}
}

func TestRenderArtRejectsVariantOutOfRange(t *testing.T) {
	if _, err := RenderArt(types.KindStar, 10, 10); !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("Out-of-range variant should fail with ErrResourceUnavailable, got %v", err)
	}
	if _, err := RenderArt(types.KindStar, -1, 10); !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("Negative variant should fail with ErrResourceUnavailable, got %v", err)
	}
}

func TestResourceManagerVerify(t *testing.T) {
	entitiesCfg, _, _ := testWorldConfigs()

	rm := NewResourceManager(entitiesCfg)
	if err := rm.Verify(); err != nil {
		t.Errorf("Verify over the default config should pass, got %v", err)
	}

	// 配置缺失时验证失败并上抛 ErrResourceUnavailable
	rmBad := NewResourceManager(nil)
	if err := rmBad.Verify(); !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("Verify without config should fail with ErrResourceUnavailable, got %v", err)
	}
}
