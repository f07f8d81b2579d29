package service

import (
	"errors"
	"testing"

	"github.com/wallmasters/storefront/internal/repository"
)

func sampleAddress(houseNo string) AddressInput {
	return AddressInput{
		Name:     "Mona",
		Email:    "Mona@Example.com",
		MobileNo: "01000000000",
		HouseNo:  houseNo,
		Street:   "Tahrir St",
		City:     "Cairo",
	}
}

func TestAddressServiceCreateAndDuplicate(t *testing.T) {
	svc := NewAddressService(repository.NewAddressRepository(openServiceTestDB(t)), "")

	addr, err := svc.Create(7, sampleAddress("12"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if addr.Country != "Egypt" || addr.Email != "mona@example.com" {
		t.Fatalf("unexpected normalized address: %+v", addr)
	}
	if _, err := svc.Create(7, sampleAddress("12")); !errors.Is(err, ErrAddressExists) {
		t.Fatalf("expected ErrAddressExists, got %v", err)
	}
	// 其他用户的同一地址不算重复
	if _, err := svc.Create(8, sampleAddress("12")); err != nil {
		t.Fatalf("other user create failed: %v", err)
	}
}

func TestAddressServiceCreateValidation(t *testing.T) {
	svc := NewAddressService(repository.NewAddressRepository(openServiceTestDB(t)), "Egypt")

	input := sampleAddress("3")
	input.City = " "
	if _, err := svc.Create(1, input); !errors.Is(err, ErrAddressInvalid) {
		t.Fatalf("expected ErrAddressInvalid, got %v", err)
	}
	input = sampleAddress("3")
	input.Email = "not-an-email"
	if _, err := svc.Create(1, input); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestAddressServiceListPromotesSingleAddress(t *testing.T) {
	svc := NewAddressService(repository.NewAddressRepository(openServiceTestDB(t)), "Egypt")
	if _, err := svc.Create(3, sampleAddress("1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	list, err := svc.List(3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || !list[0].IsDefault {
		t.Fatalf("single address should become default: %+v", list)
	}
	again, err := svc.List(3)
	if err != nil || !again[0].IsDefault {
		t.Fatalf("default flag should be persisted: %+v err=%v", again, err)
	}
}

func TestAddressServiceSetDefaultKeepsSingleDefault(t *testing.T) {
	svc := NewAddressService(repository.NewAddressRepository(openServiceTestDB(t)), "Egypt")
	first, err := svc.Create(5, sampleAddress("1"))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	withDefault := sampleAddress("2")
	withDefault.IsDefault = true
	second, err := svc.Create(5, withDefault)
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	if _, err := svc.SetDefault(5, first.ID); err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	list, err := svc.List(5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
			if a.ID != first.ID {
				t.Fatalf("wrong default address: %d", a.ID)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default, got %d", defaults)
	}

	if _, err := svc.SetDefault(5, 9999); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if _, err := svc.SetDefault(6, second.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("other user's address must not be found, got %v", err)
	}
}

func TestAddressServiceDelete(t *testing.T) {
	svc := NewAddressService(repository.NewAddressRepository(openServiceTestDB(t)), "Egypt")
	addr, err := svc.Create(2, sampleAddress("9"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(3, addr.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("delete by other user should fail, got %v", err)
	}
	if err := svc.Delete(2, addr.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(2, addr.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}
