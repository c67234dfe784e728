package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/schedule"
)

// importColumns is the expected CSV header, in order.
var importColumns = []string{
	"driver_mobile",
	"vehicle_registration",
	"client_store_name",
	"start_date",
	"end_date",
	"holidays",
	"start_time",
	"end_time",
	"lat",
	"long",
	"destination_station_name",
}

// ImportResult counts the fate of every row of a bulk import. A
// structurally broken file reports -1 in every counter.
type ImportResult struct {
	Added     int `json:"added"`
	Skipped   int `json:"skipped"`
	Invalid   int `json:"invalid"`
	NoLicense int `json:"no_license"`
}

func malformedImport() ImportResult {
	return ImportResult{Added: -1, Skipped: -1, Invalid: -1, NoLicense: -1}
}

// importRow is one parsed CSV line before any lookups.
type importRow struct {
	DriverMobile    int64
	Registration    string
	StoreName       string
	StartDate       string
	EndDate         string
	Holidays        []string
	SlotStart       string
	SlotEnd         string
	Lat             float64
	Long            float64
	DestinationName string
}

// parseImportRow validates and converts one record. Dates arrive as
// "2006-01-02", times as "3:04 PM", holidays pipe separated.
func parseImportRow(record []string) (importRow, error) {
	if len(record) != len(importColumns) {
		return importRow{}, ErrInvalidInput
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	mobile, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return importRow{}, ErrInvalidInput
	}
	if record[1] == "" || record[2] == "" || record[10] == "" {
		return importRow{}, ErrInvalidInput
	}

	start, err := schedule.ParseDate(record[3])
	if err != nil {
		return importRow{}, ErrInvalidInput
	}
	end, err := schedule.ParseDate(record[4])
	if err != nil {
		return importRow{}, ErrInvalidInput
	}
	if end.Before(start) {
		return importRow{}, ErrInvalidInput
	}

	var holidays []string
	if record[5] != "" {
		for _, day := range strings.Split(record[5], "|") {
			day = strings.TrimSpace(day)
			if _, err := schedule.ParseDate(day); err != nil {
				return importRow{}, ErrInvalidInput
			}
			holidays = append(holidays, day)
		}
	}

	slotStart, err := schedule.ParseClock12(record[6])
	if err != nil {
		return importRow{}, ErrInvalidInput
	}
	slotEnd, err := schedule.ParseClock12(record[7])
	if err != nil {
		return importRow{}, ErrInvalidInput
	}

	lat, err := strconv.ParseFloat(record[8], 64)
	if err != nil {
		return importRow{}, ErrInvalidInput
	}
	long, err := strconv.ParseFloat(record[9], 64)
	if err != nil {
		return importRow{}, ErrInvalidInput
	}

	return importRow{
		DriverMobile:    mobile,
		Registration:    record[1],
		StoreName:       record[2],
		StartDate:       record[3],
		EndDate:         record[4],
		Holidays:        holidays,
		SlotStart:       schedule.FormatTimeOfDay(slotStart),
		SlotEnd:         schedule.FormatTimeOfDay(slotEnd),
		Lat:             lat,
		Long:            long,
		DestinationName: record[10],
	}, nil
}

// ImportCSV ingests a roster bulk file. Each row resolves its driver by
// mobile number, vehicle by registration, store and station by name,
// then goes through the regular save path. Rows are independent: one
// bad row never aborts the rest.
func (s *RosterService) ImportCSV(ctx context.Context, principal model.Principal, file io.Reader) (ImportResult, error) {
	if !principal.IsAdmin() {
		return ImportResult{}, ErrPermissionDenied
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return malformedImport(), nil
	}
	if len(header) != len(importColumns) {
		return malformedImport(), nil
	}
	for i, col := range importColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return malformedImport(), nil
		}
	}

	var result ImportResult
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return malformedImport(), nil
		}

		row, err := parseImportRow(record)
		if err != nil {
			result.Invalid++
			continue
		}

		switch s.importRow(ctx, principal, row) {
		case importAdded:
			result.Added++
		case importSkipped:
			result.Skipped++
		case importNoLicense:
			result.NoLicense++
		default:
			result.Invalid++
		}
	}
	return result, nil
}

type importOutcome int

const (
	importAdded importOutcome = iota
	importSkipped
	importInvalid
	importNoLicense
)

// importRow resolves and persists one row inside its own transaction.
func (s *RosterService) importRow(ctx context.Context, principal model.Principal, row importRow) importOutcome {
	outcome := importInvalid

	err := s.db.Transaction(func(tx *gorm.DB) error {
		drivers := repository.NewDriverRepository(tx)
		vehicles := repository.NewVehicleRepository(tx)
		stores := repository.NewClientStoreRepository(tx)
		stations := repository.NewStationRepository(tx)
		rosters := repository.NewRosterRepository(tx)

		driver, err := drivers.GetActiveByMobile(ctx, row.DriverMobile)
		if err != nil {
			return err
		}
		vehicle, err := vehicles.GetActiveByRegistration(ctx, row.Registration)
		if err != nil {
			return err
		}
		store, err := stores.GetActiveByName(ctx, row.StoreName)
		if err != nil {
			return err
		}
		station, err := stations.GetActiveByName(ctx, row.DestinationName)
		if err != nil {
			return err
		}
		if driver == nil || vehicle == nil || station == nil || store == nil {
			outcome = importInvalid
			return nil
		}

		if vehicle.Speed == model.VehicleSpeedHigh &&
			(driver.Onboarding == nil || !driver.Onboarding.HasDriverLicense) {
			outcome = importNoLicense
			return nil
		}

		startDate, _ := schedule.ParseDate(row.StartDate)
		endDate, _ := schedule.ParseDate(row.EndDate)

		roster := &model.Roster{
			ClientStoreID:        store.ID,
			Type:                 model.RosterTypeLogisticsFixed,
			Status:               model.RosterStatusActive,
			DriverID:             &driver.ID,
			VehicleID:            &vehicle.ID,
			StartDate:            startDate,
			EndDate:              endDate,
			Holiday:              datatypes.NewJSONSlice(row.Holidays),
			SlotStartTime:        row.SlotStart,
			SlotEndTime:          row.SlotEnd,
			DestinationStationID: station.ID,
			CreatedByID:          &principal.UserID,
		}

		duplicate, err := rosters.FindDuplicate(ctx, roster, startDate, endDate)
		if err != nil {
			return err
		}
		if duplicate != nil {
			outcome = importSkipped
			return nil
		}

		if err := s.save(ctx, tx, roster, nil); err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				switch vErr.Reason {
				case reasonVehicleOccupied, reasonDriverOccupied:
					outcome = importSkipped
				case reasonNoDriverLicense:
					outcome = importNoLicense
				default:
					outcome = importInvalid
				}
				return nil
			}
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
				outcome = importInvalid
				return nil
			}
			return err
		}

		outcome = importAdded
		return nil
	})
	if err != nil {
		return importInvalid
	}
	return outcome
}
