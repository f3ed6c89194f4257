// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetCountriesHandler godoc
// @Summary      List countries
// @Description  Lists supported countries with the networks operating in each.
// @Tags         networks
// @Produce      json
// @Success      200 {object} CountryListResponse "Supported countries"
// @Router       /v1/countries [get]
func (h *Handler) GetCountriesHandler(c echo.Context) error {
	countries := h.Carriers.Countries()
	data := make([]CountryDetails, 0, len(countries))
	for _, country := range countries {
		data = append(data, CountryDetails{
			Country:  country,
			Networks: h.Carriers.ProvidersByCountry(country.Code),
		})
	}
	return c.JSON(http.StatusOK, CountryListResponse{Data: data})
}

// GetCountryNetworksHandler godoc
// @Summary      List networks of a country
// @Tags         networks
// @Produce      json
// @Param        code  path  string  true  "ISO 3166-1 alpha-2 country code"
// @Success      200 {object} NetworkListResponse "Networks in the country"
// @Failure      404 {object} echo.HTTPError      "Country not supported"
// @Router       /v1/countries/{code}/networks [get]
func (h *Handler) GetCountryNetworksHandler(c echo.Context) error {
	code := c.Param("code")
	country, ok := h.Carriers.Country(code)
	if !ok {
		c.Logger().Warnf("Unsupported country requested: %s", code)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: fmt.Sprintf("Country %q is not supported", code),
		}
	}

	return c.JSON(http.StatusOK, NetworkListResponse{
		Country: country,
		Data:    h.Carriers.ProvidersByCountry(country.Code),
	})
}

// GetNetworkHandler godoc
// @Summary      Get a network
// @Description  Returns a network with the number prefixes issued to it.
// @Tags         networks
// @Produce      json
// @Param        id  path  string  true  "Network id"
// @Success      200 {object} NetworkDetails "Network details"
// @Failure      404 {object} echo.HTTPError "Network not found"
// @Router       /v1/networks/{id} [get]
func (h *Handler) GetNetworkHandler(c echo.Context) error {
	id := c.Param("id")
	provider, ok := h.Carriers.Provider(id)
	if !ok {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: fmt.Sprintf("Network %q not found", id),
		}
	}

	return c.JSON(http.StatusOK, NetworkDetails{
		NetworkProvider: provider,
		Prefixes:        h.Carriers.Prefixes(provider.ID),
	})
}

// GetNetworkBalancesHandler godoc
// @Summary      Network float balances
// @Description  Returns the float balance held with each network by the transaction backend.
// @Tags         networks
// @Produce      json
// @Success      200 {object} BalanceListResponse "Balances"
// @Failure      502 {object} echo.HTTPError      "Transaction backend unavailable"
// @Router       /v1/networks/balances [get]
func (h *Handler) GetNetworkBalancesHandler(c echo.Context) error {
	balances, err := h.Balances.NetworkBalances(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to fetch network balances: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusBadGateway,
			Message: "Unable to fetch network balances, please try again later",
		}
	}
	return c.JSON(http.StatusOK, BalanceListResponse{Data: balances})
}
