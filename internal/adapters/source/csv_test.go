package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/shotzone/internal/adapters/source"
	"github.com/okian/shotzone/internal/domain/model"
	"github.com/okian/shotzone/pkg/logger"
	"github.com/okian/shotzone/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const sampleLog = `team,fgmade,x,y
Team A,1,23.0,5.0
Team A,0,0.0,10.0
Team B,1,-4.5,25.25
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shots.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write shot log: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	Convey("Given a well-formed shot log", t, func() {
		ctx := context.Background()

		Convey("When reading it", func() {
			shots, err := source.ReadCSV(ctx, strings.NewReader(sampleLog))

			Convey("Then every row should be parsed in order", func() {
				So(err, ShouldBeNil)
				So(shots, ShouldResemble, []model.ShotRecord{
					{Team: "Team A", Made: true, X: 23.0, Y: 5.0},
					{Team: "Team A", Made: false, X: 0.0, Y: 10.0},
					{Team: "Team B", Made: true, X: -4.5, Y: 25.25},
				})
			})
		})

		Convey("When columns are reordered, upper-cased and padded with extras", func() {
			log := "Y, X ,game_id,FGMADE,Team\n5.0,23.0,g1,True,Team A\n"
			shots, err := source.ReadCSV(ctx, strings.NewReader(log))

			Convey("Then columns should be matched by name", func() {
				So(err, ShouldBeNil)
				So(shots, ShouldResemble, []model.ShotRecord{{Team: "Team A", Made: true, X: 23.0, Y: 5.0}})
			})
		})

		Convey("When there is only a header", func() {
			shots, err := source.ReadCSV(ctx, strings.NewReader("team,fgmade,x,y\n"))

			Convey("Then no shots should be returned", func() {
				So(err, ShouldBeNil)
				So(shots, ShouldBeEmpty)
			})
		})
	})

	Convey("Given malformed input", t, func() {
		ctx := context.Background()

		Convey("When a required column is missing", func() {
			_, err := source.ReadCSV(ctx, strings.NewReader("team,fgmade,x\nA,1,2\n"))

			Convey("Then it should name the column", func() {
				So(errors.Is(err, source.ErrMissingColumn), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "y")
			})
		})

		Convey("When the input is empty", func() {
			_, err := source.ReadCSV(ctx, strings.NewReader(""))

			Convey("Then it should report the missing header", func() {
				So(errors.Is(err, source.ErrMissingColumn), ShouldBeTrue)
			})
		})

		Convey("When a coordinate is not a number", func() {
			_, err := source.ReadCSV(ctx, strings.NewReader("team,fgmade,x,y\nA,1,2,3\nA,1,abc,3\n"))

			Convey("Then it should reject the row with its line", func() {
				So(errors.Is(err, source.ErrInvalidRow), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "line 3")
			})
		})

		Convey("When a coordinate is not finite", func() {
			_, err := source.ReadCSV(ctx, strings.NewReader("team,fgmade,x,y\nA,1,NaN,3\n"))

			Convey("Then validation should reject it", func() {
				So(errors.Is(err, source.ErrInvalidRow), ShouldBeTrue)
			})
		})

		Convey("When the team is blank", func() {
			_, err := source.ReadCSV(ctx, strings.NewReader("team,fgmade,x,y\n ,1,2,3\n"))

			Convey("Then validation should reject it", func() {
				So(errors.Is(err, source.ErrInvalidRow), ShouldBeTrue)
			})
		})

		Convey("When the made flag is not boolean-like", func() {
			_, err := source.ReadCSV(ctx, strings.NewReader("team,fgmade,x,y\nA,maybe,2,3\n"))

			Convey("Then it should reject the row", func() {
				So(errors.Is(err, source.ErrInvalidRow), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "fgmade")
			})
		})

		Convey("When a row is shorter than the header", func() {
			_, err := source.ReadCSV(ctx, strings.NewReader("team,fgmade,x,y\nA,1,2\n"))

			Convey("Then it should reject the row", func() {
				So(errors.Is(err, source.ErrInvalidRow), ShouldBeTrue)
			})
		})
	})
}

func TestParseMade(t *testing.T) {
	Convey("Given boolean-like made flags", t, func() {
		for _, raw := range []string{"1", "1.0", "true", "True", "TRUE", "t", "yes"} {
			made, err := source.ParseMade(raw)
			So(err, ShouldBeNil)
			So(made, ShouldBeTrue)
		}
		for _, raw := range []string{"0", "0.0", "false", "False", "f", "no"} {
			made, err := source.ParseMade(raw)
			So(err, ShouldBeNil)
			So(made, ShouldBeFalse)
		}
		_, err := source.ParseMade("2")
		So(err, ShouldNotBeNil)
	})
}

func TestCSVSource_Load(t *testing.T) {
	Convey("Given a CSV source", t, func() {
		ctx := context.Background()
		m := metrics.NewManager()

		Convey("When the file exists", func() {
			src := source.NewCSVSource(writeFile(t, sampleLog), source.WithMetrics(m))
			shots, err := src.Load(ctx)

			Convey("Then it should load every shot", func() {
				So(err, ShouldBeNil)
				So(shots, ShouldHaveLength, 3)
			})
		})

		Convey("When the file is missing", func() {
			src := source.NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), source.WithMetrics(m))
			shots, err := src.Load(ctx)

			Convey("Then it should fail before reading", func() {
				So(errors.Is(err, source.ErrOpenSource), ShouldBeTrue)
				So(shots, ShouldBeNil)
			})
		})

		Convey("When the path is stdin", func() {
			src := source.NewCSVSource(source.StdinPath,
				source.WithMetrics(m),
				source.WithStdin(strings.NewReader(sampleLog)),
			)
			shots, err := src.Load(ctx)

			Convey("Then it should read the injected reader", func() {
				So(err, ShouldBeNil)
				So(shots, ShouldHaveLength, 3)
				So(src.Path(), ShouldEqual, "-")
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			src := source.NewCSVSource(writeFile(t, sampleLog), source.WithMetrics(m))
			_, err := src.Load(cctx)

			Convey("Then it should return the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestStatic(t *testing.T) {
	Convey("Given an in-memory source", t, func() {
		records := source.Static{{Team: "A", Made: true, X: 1, Y: 1}}

		Convey("When loading", func() {
			shots, err := records.Load(context.Background())

			Convey("Then it should return a copy", func() {
				So(err, ShouldBeNil)
				So(shots, ShouldResemble, []model.ShotRecord(records))
				shots[0].Team = "B"
				So(records[0].Team, ShouldEqual, "A")
			})
		})
	})
}
